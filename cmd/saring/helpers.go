package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/saring-audit/saring/internal/classify"
	"github.com/saring-audit/saring/internal/common"
	"github.com/saring-audit/saring/internal/flow"
	"github.com/saring-audit/saring/internal/storage"
)

// openStore opens the SQLite store at the configured path.
func openStore() (*storage.SQLiteStore, error) {
	path := viper.GetString("database.path")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".local", "share", "saring", "saring.db")
	}

	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	common.LogDebug("opened database", common.Fields{"path": path})
	return store, nil
}

// classifierConfig merges configured weights over the defaults.
func classifierConfig() (classify.Config, error) {
	cfg := classify.DefaultConfig()
	if err := viper.UnmarshalKey("classify", &cfg); err != nil {
		return cfg, fmt.Errorf("%w: classify settings: %v", common.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// scanConfig merges configured audit thresholds over the defaults.
func scanConfig() (flow.Config, error) {
	cfg := flow.DefaultConfig()
	if err := viper.UnmarshalKey("audit", &cfg); err != nil {
		return cfg, fmt.Errorf("%w: audit settings: %v", common.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// formatRupiah renders an amount with thousands separators for display.
func formatRupiah(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	n := len(s)
	if n <= 3 {
		return "Rp " + s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return "Rp " + string(out)
}
