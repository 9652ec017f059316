package telemetry

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrDecodeCACerts is returned when the CA certificates are not valid base64.
	ErrDecodeCACerts = errors.New("decoding tracing CA certificates")

	// ErrNoCACerts is returned when no PEM certificate could be read from the CA certificates.
	ErrNoCACerts = errors.New("no CA certificate found in tracing CA certificates")
)

// collectorTLSConfig builds the TLS configuration of the OTLP exporter from base64 encoded
// PEM CA certificates.
func collectorTLSConfig(caCertsBase64 string) (*tls.Config, error) {
	pemCerts, err := base64.StdEncoding.DecodeString(caCertsBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeCACerts, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemCerts) {
		return nil, ErrNoCACerts
	}

	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
