package domain

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"
)

// generateTestKeypair generates a self-signed certificate and key in PEM form.
func generateTestKeypair(t *testing.T) (certPEM, keyPEM []byte) {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	template := x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "test-device"},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	keyDER, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})

	return certPEM, keyPEM
}

func TestCredentials_TLSConfig(t *testing.T) {
	certPEM, keyPEM := generateTestKeypair(t)

	creds := Credentials{ClientCert: certPEM, PrivateKey: keyPEM}
	cfg, err := creds.TLSConfig()
	if err != nil {
		t.Fatalf("TLSConfig() error = %v", err)
	}

	if len(cfg.Certificates) != 1 {
		t.Errorf("Certificates count = %d, want 1", len(cfg.Certificates))
	}
	if cfg.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %x, want TLS 1.2", cfg.MinVersion)
	}
	if cfg.RootCAs != nil {
		t.Error("RootCAs set without a CA bundle, want system pool (nil)")
	}
}

func TestCredentials_TLSConfig_WithRootCA(t *testing.T) {
	certPEM, keyPEM := generateTestKeypair(t)

	creds := Credentials{RootCA: certPEM, ClientCert: certPEM, PrivateKey: keyPEM}
	cfg, err := creds.TLSConfig()
	if err != nil {
		t.Fatalf("TLSConfig() error = %v", err)
	}
	if cfg.RootCAs == nil {
		t.Error("RootCAs = nil, want custom pool")
	}
}

func TestCredentials_TLSConfig_Invalid(t *testing.T) {
	certPEM, keyPEM := generateTestKeypair(t)

	tests := []struct {
		name  string
		creds Credentials
	}{
		{"garbage keypair", Credentials{ClientCert: []byte("bogus"), PrivateKey: []byte("bogus")}},
		{"missing key", Credentials{ClientCert: certPEM}},
		{"garbage root CA", Credentials{RootCA: []byte("bogus"), ClientCert: certPEM, PrivateKey: keyPEM}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.creds.TLSConfig(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
