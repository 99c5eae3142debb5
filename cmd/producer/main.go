package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"

	"catalog/internal/models"
)

var brands = []string{"Acme", "Globex", "Initech", "Umbrella", "Stark"}
var categories = []string{"electronics", "clothing", "home", "sports", "toys"}

func generateProduct() *models.Product {
	id := rand.Intn(100000000)

	return &models.Product{
		SKU:         fmt.Sprintf("SKU-%08d", id),
		Name:        fmt.Sprintf("Test Product %d", id),
		Brand:       brands[rand.Intn(len(brands))],
		Category:    categories[rand.Intn(len(categories))],
		Description: "Synthetic product generated for testing",
		PriceCents:  int64(rand.Intn(100000)) + 100,
		Currency:    "USD",
		Stock:       rand.Intn(1000),
		UpdatedAt:   time.Now(),
	}
}

func main() {
	var (
		brokers  = flag.String("brokers", "", "comma-separated list of Kafka brokers")
		topic    = flag.String("topic", "products", "Kafka topic to publish to")
		count    = flag.Int("count", 10, "number of products to publish")
		interval = flag.Duration("interval", 100*time.Millisecond, "delay between messages")
	)
	flag.Parse()

	if *brokers == "" {
		if err := godotenv.Load("deployments/.env"); err == nil {
			*brokers = os.Getenv("KAFKA_BROKERS")
		}
	}
	if *brokers == "" {
		*brokers = "localhost:9092"
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:    *topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("failed to close writer: %v", err)
		}
	}()

	ctx := context.Background()

	for i := 0; i < *count; i++ {
		product := generateProduct()

		value, err := json.Marshal(product)
		if err != nil {
			log.Fatalf("failed to marshal product: %v", err)
		}

		err = writer.WriteMessages(
			ctx, kafka.Message{
				Key:   []byte(product.SKU),
				Value: value,
			},
		)
		if err != nil {
			log.Fatalf("failed to write message: %v", err)
		}

		log.Printf("published %s", product.SKU)
		time.Sleep(*interval)
	}
}
