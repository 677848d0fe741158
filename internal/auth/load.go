package auth

import (
	"github.com/MKhiriev/go-rest-pipeline/internal/config"
	"github.com/MKhiriev/go-rest-pipeline/internal/crypto"
)

// LoadRegistry builds the registry configured in cfg: the inline JSON object
// or the keys file, sealed when a passphrase is set. Neither yields an empty
// registry, which leaves protected routes unavailable unless they accept
// sessions.
func LoadRegistry(cfg config.Auth, sealer crypto.Sealer) (*KeyRegistry, error) {
	switch {
	case cfg.KeysJSON != "":
		return ParseRegistry([]byte(cfg.KeysJSON))
	case cfg.KeysFile != "":
		return LoadRegistryFile(cfg.KeysFile, cfg.KeysPassphrase, sealer)
	}
	return NewKeyRegistry(), nil
}
