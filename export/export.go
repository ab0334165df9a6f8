// Package export persists trained embedding tables. Sinks receive the full
// class and relation tables in index order together with the matching name
// lists and overwrite whatever a previous checkpoint wrote.
package export

// Sink writes one checkpoint of both embedding tables.
type Sink interface {
	Put(cls, rel [][]float32, clsNames, relNames []string) error
}

// Multi fans a checkpoint out to several sinks, stopping at the first
// failure.
type Multi []Sink

func (m Multi) Put(cls, rel [][]float32, clsNames, relNames []string) error {
	for _, s := range m {
		if err := s.Put(cls, rel, clsNames, relNames); err != nil {
			return err
		}
	}
	return nil
}
