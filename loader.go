package capgains

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindLedger returns the unique ledger matching the query under path.
// If the query is empty and no ledger file exists, an empty default ledger
// is returned. A query that matches nothing, or more than one file, is an
// error.
func FindLedger(path, query string) (*Ledger, error) {
	ledgerPaths, err := findLedgerPaths(path, query)
	if err != nil {
		return nil, err
	}
	switch len(ledgerPaths) {
	case 0:
		if query == "" {
			l := NewLedger()
			l.name = "trades"
			return l, nil
		}
		return nil, fmt.Errorf("could not find ledger %q", query)
	case 1:
		return loadLedgerFile(path, ledgerPaths[0])
	default:
		return nil, fmt.Errorf("multiple ledgers found for %q", query)
	}
}

// loadLedgerFile opens, decodes, and initializes a ledger from a given file
// path. It sets the ledger's name based on its relative path to the root.
func loadLedgerFile(root, fullPath string) (*Ledger, error) {
	relPath, err := filepath.Rel(root, fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not determine relative path for %q: %w", fullPath, err)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", fullPath, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", fullPath, err)
	}
	ledger.name = strings.TrimSuffix(relPath, ".jsonl")
	return ledger, nil
}

// SaveLedger saves the ledger to its corresponding file within the root
// path, derived from the ledger's name.
func SaveLedger(root string, ledger *Ledger) error {
	if ledger.Name() == "" {
		return fmt.Errorf("cannot save ledger with an empty name")
	}

	filePath := filepath.Join(root, ledger.Name()+".jsonl")
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", filePath, err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", filePath, err)
	}
	defer file.Close()

	return EncodeLedger(file, ledger)
}

// findLedgerPaths scans a directory for ledger files matching the query.
// A ledger name is its relative path from the root without the .jsonl
// extension.
func findLedgerPaths(root, query string) ([]string, error) {
	var ledgers []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".jsonl") {
			relPath, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(relPath, ".jsonl")
			if query == "" || name == query {
				ledgers = append(ledgers, p)
			}
		}
		return nil
	})

	return ledgers, err
}
