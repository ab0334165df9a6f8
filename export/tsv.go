package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// TSV writes each table to a tab-separated text file: one row per entity,
// the name first, then the embedding as space-separated floats. Both files
// are truncated and rewritten on every checkpoint.
type TSV struct {
	ClsPath string
	RelPath string
}

func (t *TSV) Put(cls, rel [][]float32, clsNames, relNames []string) error {
	if err := writeTSV(t.ClsPath, cls, clsNames); err != nil {
		return err
	}
	return writeTSV(t.RelPath, rel, relNames)
}

func writeTSV(path string, table [][]float32, names []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	w := bufio.NewWriter(f)
	for i, name := range names {
		w.WriteString(name)
		for j, v := range table[i] {
			if j == 0 {
				w.WriteByte('\t')
			} else {
				w.WriteByte(' ')
			}
			w.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
