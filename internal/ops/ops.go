// Package ops implements the vcard operations (query, count, diff, delete) on
// top of the parsing primitives in internal/vcard. Each operation takes an
// XxxInput and returns an XxxOutput; the CLI and MCP surfaces are thin
// adapters over these functions.
package ops

import (
	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

// Keep-field tokens accepted by Delete.
const (
	KeepName     = "name"
	KeepNumber   = "number"
	KeepPhoto    = "photo"
	KeepCategory = "category"
)

// KeepFields lists the valid keep-field tokens in display order.
var KeepFields = []string{KeepName, KeepNumber, KeepPhoto, KeepCategory}

// decoderFor returns the decoder configured by cfg.
func decoderFor(cfg *config.Config) *vcard.Decoder {
	if cfg == nil {
		return vcard.NewDecoder()
	}
	return vcard.NewDecoder(cfg.Encodings...)
}

// orDefault returns cfg, or the default config when cfg is nil.
func orDefault(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}
