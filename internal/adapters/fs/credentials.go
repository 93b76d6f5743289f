// Package fs loads credential material from the device filesystem.
package fs

import (
	"fmt"
	"os"

	"github.com/edge-labs/telemship/internal/domain"
)

// LoadCredentials reads the TLS byte blobs once at startup. The root CA
// path may be empty, in which case the system pool is used for server
// verification; client certificate and key are required for the mutual
// handshake.
func LoadCredentials(caPath, certPath, keyPath string) (domain.Credentials, error) {
	var creds domain.Credentials

	if caPath != "" {
		b, err := os.ReadFile(caPath)
		if err != nil {
			return domain.Credentials{}, fmt.Errorf("read root CA: %w", err)
		}
		creds.RootCA = b
	}

	cert, err := os.ReadFile(certPath)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("read client certificate: %w", err)
	}
	creds.ClientCert = cert

	key, err := os.ReadFile(keyPath)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("read private key: %w", err)
	}
	creds.PrivateKey = key

	return creds, nil
}
