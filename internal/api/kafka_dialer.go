package api

import (
	"crypto/tls"
	"crypto/x509"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// CreateKafkaDialer cria o dialer do Kafka com suporte a SASL/PLAIN e TLS
// (necessário para brokers gerenciados)
func CreateKafkaDialer(username, password, caCert string) *kafka.Dialer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	if username != "" && password != "" {
		mechanism := plain.Mechanism{
			Username: username,
			Password: password,
		}
		dialer.SASLMechanism = mechanism
		log.Printf("🔐 Kafka: autenticação SASL/PLAIN habilitada (username: %s)", username)
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: false,
	}

	if caCert != "" {
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM([]byte(caCert)); ok {
			tlsConfig.RootCAs = caCertPool
			log.Printf("🔒 Kafka: TLS com certificado CA habilitado")
		} else {
			log.Printf("⚠️ Kafka: não foi possível interpretar o certificado CA, usando certificados do sistema")
		}
	}

	// Com SASL o broker exige TLS; sem CA explícito ficam os certificados do sistema
	if dialer.SASLMechanism != nil || caCert != "" {
		if dialer.SASLMechanism != nil && caCert == "" {
			tlsConfig.RootCAs = nil
		}
		dialer.TLS = tlsConfig
	}

	return dialer
}

// ParseKafkaBrokers interpreta a lista de brokers separada por vírgula
func ParseKafkaBrokers(brokers string) []string {
	if brokers == "" {
		return []string{}
	}
	brokerList := strings.Split(strings.ReplaceAll(brokers, " ", ""), ",")
	var result []string
	for _, broker := range brokerList {
		if broker != "" {
			result = append(result, broker)
		}
	}
	return result
}
