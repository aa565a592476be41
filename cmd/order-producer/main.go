package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderRequest mirrors the intake payload consumed by the matching engine.
type OrderRequest struct {
	Action     string    `json:"action"`
	OrderID    string    `json:"orderID"`
	Symbol     string    `json:"symbol"`
	Type       string    `json:"type"`
	Side       string    `json:"side"`
	Position   string    `json:"position"`
	Quantity   int64     `json:"quantity"`
	Price      float64   `json:"price,omitempty"`
	Expiration time.Time `json:"expiration,omitempty"`
}

// generateRandomID creates a random alphanumeric ID
func generateRandomID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	var result strings.Builder
	for i := 0; i < length; i++ {
		result.WriteByte(charset[rand.Intn(len(charset))])
	}
	return result.String()
}

// generateRequests creates a specified number of realistic order requests
func generateRequests(count int, symbols []string, basePrice float64, priceSpread float64, expiryRatio float64) []OrderRequest {
	requests := make([]OrderRequest, count)

	for i := 0; i < count; i++ {
		// Order types: 70% limit, 30% market
		orderType := "LIMIT"
		if rand.Float64() < 0.3 {
			orderType = "MARKET"
		}

		// Order side: 50/50 buy/sell
		side := "SELL"
		isBuy := rand.Float64() < 0.5
		if isBuy {
			side = "BUY"
		}

		position := "LONG"
		if rand.Float64() < 0.5 {
			position = "SHORT"
		}

		symbol := symbols[rand.Intn(len(symbols))]
		orderID := generateRandomID(rand.Intn(4) + 5) // 5-8 characters

		// Quantity between 1 and 100 contracts
		quantity := int64(rand.Intn(100) + 1)

		// Price calculation
		var price float64
		if orderType == "LIMIT" {
			if isBuy { // Buy order - typically below market
				price = basePrice - rand.Float64()*priceSpread*0.8
			} else { // Sell order - typically above market
				price = basePrice + rand.Float64()*priceSpread*0.8
			}
			price = float64(int(price*10)) / 10 // Round to 1 decimal place

			// Ensure price is positive
			if price <= 0 {
				price = basePrice
			}
		}

		// A slice of orders carries an expiration in the near future so the
		// engine's expiry sweep has something to purge.
		var expiration time.Time
		if rand.Float64() < expiryRatio {
			expiration = time.Now().Add(time.Duration(rand.Intn(60)+1) * time.Second)
		}

		requests[i] = OrderRequest{
			Action:     "PLACE",
			OrderID:    orderID,
			Symbol:     symbol,
			Type:       orderType,
			Side:       side,
			Position:   position,
			Quantity:   quantity,
			Price:      price,
			Expiration: expiration,
		}
	}

	return requests
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "orders", "Kafka topic name")
		symbols     = flag.String("symbols", "BTC-PERP", "Contract symbols (comma-separated)")
		file        = flag.String("file", "", "JSON file with order requests (optional, generates requests if not provided)")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending requests")
		count       = flag.Int("count", 1000, "Number of requests to generate")
		basePrice   = flag.Float64("base-price", 3945.5, "Base price for orders")
		priceSpread = flag.Float64("price-spread", 200.0, "Price spread range")
		expiryRatio = flag.Float64("expiry-ratio", 0.1, "Fraction of orders carrying a near-term expiration")
	)
	flag.Parse()

	// Initialize random seed
	rand.Seed(time.Now().UnixNano())

	symbolList := strings.Split(*symbols, ",")

	// Create Kafka writer
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	// Load requests
	var requests []OrderRequest
	if *file != "" {
		// Load from file
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read file %s: %v", *file, err)
		}
		if err := json.Unmarshal(data, &requests); err != nil {
			log.Fatalf("Failed to parse JSON from file: %v", err)
		}
		log.Printf("Loaded %d requests from file: %s", len(requests), *file)
	} else {
		// Generate requests
		log.Printf("Generating %d requests...", *count)
		requests = generateRequests(*count, symbolList, *basePrice, *priceSpread, *expiryRatio)
		log.Printf("Generated %d requests", len(requests))
	}

	log.Printf("Sending requests to Kafka broker: %s, topic: %s", *brokers, *topic)
	log.Printf("Delay between requests: %v", *delay)

	// Send requests
	for i, req := range requests {
		// Convert request to JSON
		reqJSON, err := json.Marshal(req)
		if err != nil {
			log.Printf("Failed to marshal request %d: %v", i+1, err)
			continue
		}

		// Key by symbol so one contract's orders stay ordered
		msg := kafka.Message{
			Key:   []byte(req.Symbol),
			Value: reqJSON,
			Time:  time.Now(),
		}

		// Send message
		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("Failed to send request %d (%s): %v", i+1, req.OrderID, err)
			continue
		}

		// Log progress every 100 requests or for the last one
		if (i+1)%100 == 0 || i == len(requests)-1 {
			if req.Type == "MARKET" {
				log.Printf("Sent request %d/%d: %s | %s | %s %s | Qty: %d",
					i+1, len(requests), req.OrderID, req.Symbol,
					req.Type, req.Side, req.Quantity)
			} else {
				log.Printf("Sent request %d/%d: %s | %s | %s %s | Qty: %d @ $%.1f",
					i+1, len(requests), req.OrderID, req.Symbol,
					req.Type, req.Side, req.Quantity, req.Price)
			}
		}

		// Wait before sending next request (except for the last one)
		if i < len(requests)-1 {
			time.Sleep(*delay)
		}
	}

	log.Printf("Successfully sent all %d requests!", len(requests))

	// Print summary
	marketOrders := 0
	limitOrders := 0
	buyOrders := 0
	sellOrders := 0
	expiring := 0

	for _, req := range requests {
		if req.Type == "MARKET" {
			marketOrders++
		} else {
			limitOrders++
		}
		if req.Side == "BUY" {
			buyOrders++
		} else {
			sellOrders++
		}
		if !req.Expiration.IsZero() {
			expiring++
		}
	}

	log.Printf("--- Summary ---")
	log.Printf("Total Requests: %d", len(requests))
	log.Printf("Market Orders: %d", marketOrders)
	log.Printf("Limit Orders: %d", limitOrders)
	log.Printf("Buy Orders: %d", buyOrders)
	log.Printf("Sell Orders: %d", sellOrders)
	log.Printf("Expiring Orders: %d", expiring)
}
