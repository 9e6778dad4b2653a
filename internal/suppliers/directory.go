// Package suppliers resolves supplier names from the ORGA to the contact
// details printed in voucher headers. The base directory is a YAML file;
// an optional database overlays operator-maintained corrections.
package suppliers

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"vouchergen/internal/domain"
	"vouchergen/internal/domain/models"
	"vouchergen/internal/utils"
)

type directoryFile struct {
	Suppliers map[string]models.Contact `yaml:"suppliers"`
}

// Directory maps normalized supplier keys to contact details.
type Directory struct {
	entries map[string]models.Contact
}

// LoadDirectory reads the YAML seed and, when db is non-nil, overlays rows
// from the supplier_contacts table. Overlay rows win over the seed.
func LoadDirectory(yamlPath string, db *sql.DB) (*Directory, error) {
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		return nil, domain.InternalError{Msg: "read supplier directory", Err: err}
	}

	var parsed directoryFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, domain.InternalError{Msg: "parse supplier directory", Err: err}
	}

	d := &Directory{entries: map[string]models.Contact{}}
	for key, contact := range parsed.Suppliers {
		d.entries[utils.NormalizeKey(key)] = contact
	}
	utils.LogEvent("", "suppliers", "load", fmt.Sprintf("%d entries from %s", len(d.entries), yamlPath))

	if db != nil {
		if err := d.overlayFromDB(db); err != nil {
			// The overlay is optional; the YAML seed keeps the service
			// usable when the database is down.
			utils.LogEvent("", "suppliers", "overlay", "skipped: "+err.Error())
		}
	}
	return d, nil
}

func (d *Directory) overlayFromDB(db *sql.DB) error {
	rows, err := db.Query(`SELECT name, display_name, address, phone, gps FROM supplier_contacts`)
	if err != nil {
		return err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var key string
		var c models.Contact
		if err := rows.Scan(&key, &c.DisplayName, &c.Address, &c.Phone, &c.GPS); err != nil {
			return err
		}
		d.entries[utils.NormalizeKey(key)] = c
		n++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	utils.LogEvent("", "suppliers", "overlay", fmt.Sprintf("%d entries from database", n))
	return nil
}

// Lookup resolves a supplier name to its contact block. Exact key match
// first, then substring match either way, and finally a bare upper-cased
// fallback so every voucher header has a title even for unknown suppliers.
func (d *Directory) Lookup(supplierName string) models.Contact {
	name := utils.NormalizeKey(supplierName)
	if name == "" {
		return models.Contact{}
	}

	if c, ok := d.entries[name]; ok {
		return c
	}
	// Longest matching key wins so "whale rock lodge" beats "whale rock".
	var bestKey string
	for key := range d.entries {
		if !strings.Contains(name, key) && !strings.Contains(key, name) {
			continue
		}
		if len(key) > len(bestKey) || (len(key) == len(bestKey) && key < bestKey) {
			bestKey = key
		}
	}
	if bestKey != "" {
		return d.entries[bestKey]
	}
	return models.Contact{DisplayName: strings.ToUpper(strings.TrimSpace(supplierName))}
}

// Len reports the number of directory entries.
func (d *Directory) Len() int { return len(d.entries) }
