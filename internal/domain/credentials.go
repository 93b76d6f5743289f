package domain

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
)

// Credentials holds the TLS material for the mutually-authenticated broker
// session. Loaded once before the first connect attempt and never mutated.
type Credentials struct {
	// RootCA is the PEM-encoded broker CA bundle. Optional: when empty the
	// system certificate pool is used.
	RootCA []byte

	// ClientCert is the PEM-encoded device certificate.
	ClientCert []byte

	// PrivateKey is the PEM-encoded device private key.
	PrivateKey []byte
}

// TLSConfig builds the TLS client configuration for the broker connection.
func (c Credentials) TLSConfig() (*tls.Config, error) {
	keypair, err := tls.X509KeyPair(c.ClientCert, c.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("load client keypair: %w", err)
	}

	cfg := &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{keypair},
	}

	if len(c.RootCA) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(c.RootCA) {
			return nil, fmt.Errorf("root CA bundle contains no valid certificates")
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}
