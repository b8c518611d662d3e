// Command loadgen fires concurrent sale registrations at a running
// server to exercise the stock invariant under contention: with N units
// of stock and more than N single-unit requests, exactly N must succeed.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const totalRequests = 50

type saleRequest struct {
	RequestID  string     `json:"request_id"`
	CustomerID string     `json:"customer_id"`
	Items      []saleItem `json:"items"`
}

type saleItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func main() {
	baseURL := os.Getenv("TARGET_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	customerID := os.Getenv("CUSTOMER_ID")
	productID := os.Getenv("PRODUCT_ID")
	if customerID == "" || productID == "" {
		log.Fatal("CUSTOMER_ID and PRODUCT_ID are required")
	}

	client := &http.Client{Timeout: 10 * time.Second}

	var successCount atomic.Int32
	var stockRejected atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body, _ := json.Marshal(saleRequest{
				RequestID:  uuid.NewString(),
				CustomerID: customerID,
				Items:      []saleItem{{ProductID: productID, Quantity: 1}},
			})

			resp, err := client.Post(baseURL+"/sales", "application/json", bytes.NewReader(body))
			if err != nil {
				failCount.Add(1)
				return
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusBadRequest:
				stockRejected.Add(1)
			default:
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	fmt.Printf("requests:       %d\n", totalRequests)
	fmt.Printf("sales created:  %d\n", successCount.Load())
	fmt.Printf("stock rejected: %d\n", stockRejected.Load())
	fmt.Printf("other failures: %d\n", failCount.Load())
	fmt.Printf("elapsed:        %s\n", elapsed)
}
