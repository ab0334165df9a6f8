// Package main provides the program for training EL ontology ball embeddings.
// It reads a normalized ontology file, learns a ball per class and a
// translation per relation by gradient descent over the geometric axiom
// losses, and periodically writes both embedding tables out.
package main
