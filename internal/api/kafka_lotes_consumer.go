package api

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"conciliacao/server/internal/services"
)

// KafkaLotesConsumer lê os resultados dos jobs de sincronização iFood e
// registra os lotes, repassando a atualização aos painéis conectados
type KafkaLotesConsumer struct {
	brokers     []string
	topic       string
	groupID     string
	reader      *kafka.Reader
	ctx         context.Context
	cancel      context.CancelFunc
	loteService *services.LoteService
	processados int64 // Contador de eventos processados
}

// NewKafkaLotesConsumer cria o consumer do tópico de lotes
func NewKafkaLotesConsumer(brokers string, topic string, loteService *services.LoteService, username, password, caCert string) *KafkaLotesConsumer {
	brokerList := ParseKafkaBrokers(brokers)
	ctx, cancel := context.WithCancel(context.Background())

	dialer := CreateKafkaDialer(username, password, caCert)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokerList,
		Topic:       topic,
		GroupID:     "conciliacao-lotes-group",
		StartOffset: kafka.LastOffset, // Lotes antigos já estão no banco
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     1 * time.Second,
		Dialer:      dialer,
	})

	return &KafkaLotesConsumer{
		brokers:     brokerList,
		topic:       topic,
		groupID:     "conciliacao-lotes-group",
		reader:      reader,
		ctx:         ctx,
		cancel:      cancel,
		loteService: loteService,
	}
}

// Start dispara a leitura do tópico em background
func (kc *KafkaLotesConsumer) Start() {
	log.Printf("📡 Kafka Lotes Consumer iniciado: topic=%s, groupID=%s", kc.topic, kc.groupID)

	go func() {
		for {
			select {
			case <-kc.ctx.Done():
				log.Println("🛑 Kafka Lotes Consumer encerrado")
				return
			default:
				msg, err := kc.reader.ReadMessage(kc.ctx)
				if err != nil {
					if err == context.Canceled {
						return
					}
					log.Printf("⚠️ Kafka Lotes Consumer erro de leitura: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}

				var evento services.ResultadoLote
				if err := json.Unmarshal(msg.Value, &evento); err != nil {
					log.Printf("⚠️ Evento de lote inválido (offset=%d): %v", msg.Offset, err)
					continue
				}

				lote, err := kc.loteService.RegistrarResultado(&evento)
				if err != nil {
					log.Printf("⚠️ Erro ao registrar lote (offset=%d): %v", msg.Offset, err)
					continue
				}

				atomic.AddInt64(&kc.processados, 1)
				BroadcastAtualizacao("lote_atualizado", lote)
			}
		}
	}()
}

// Stop encerra o consumer
func (kc *KafkaLotesConsumer) Stop() {
	kc.cancel()
	if err := kc.reader.Close(); err != nil {
		log.Printf("⚠️ Erro ao fechar Kafka reader: %v", err)
	}
}

// Processados devolve o total de eventos processados desde o início
func (kc *KafkaLotesConsumer) Processados() int64 {
	return atomic.LoadInt64(&kc.processados)
}
