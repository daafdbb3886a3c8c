//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/delivery-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	activated := flag.String("activated", "", "activation date YYYY-MM-DD (empty = today)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Мумбаи -> Дели
	event := domain.OrderActivatedEvent{
		OrderID:  "test-" + uuid.NewString()[:8],
		Billing:  domain.GeoPoint{Lat: 19.0760, Lon: 72.8777},
		Shipping: domain.GeoPoint{Lat: 28.6139, Lon: 77.2090},
	}
	if *activated != "" {
		d, err := time.Parse("2006-01-02", *activated)
		if err != nil {
			log.Fatalf("Invalid activation date: %v", err)
		}
		event.ActivatedDate = &d
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Курсор ответа берем до публикации, чтобы не пропустить быстрый ответ
	lastID := "$"
	if msgs, err := client.XRevRangeN(ctx, domain.StreamScheduleReady, "+", "-", 1).Result(); err == nil && len(msgs) > 0 {
		lastID = msgs[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamOrderActivated,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamOrderActivated)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Order ID: %s\n", event.OrderID)

	fmt.Printf("\n⏳ Waiting for response in %s...\n", domain.StreamScheduleReady)

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamScheduleReady, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			continue
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var ready domain.ScheduleReadyEvent
				if err := json.Unmarshal([]byte(dataStr), &ready); err != nil {
					continue
				}
				if ready.OrderID != event.OrderID {
					continue
				}

				fmt.Printf("\n✅ Schedule ready\n")
				pretty, _ := json.MarshalIndent(ready, "", "  ")
				fmt.Printf("%s\n", pretty)
				return
			}
		}
	}

	fmt.Println("❌ Timeout waiting for response")
}
