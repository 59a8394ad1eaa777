package main

import (
	"fmt"
	"sync/atomic"
	"time"
)

func TestAppend(c Config) {

	if c.Base == "" {
		_, stop := CreateServer(&c)
		defer stop()
	}

	name := CreateDocument(c.Base)
	appendURL := c.Base + "/v1/documents/" + name + ":append"

	client := NewClient()

	items := c.N
	failed := int64(0)

	t0 := time.Now()
	Parallel(c.Workers, func(worker int) {
		for {
			n := atomic.AddInt64(&items, -1)
			if n < 0 {
				return
			}
			err := Post(client, appendURL, JSON{
				"id":     n,
				"worker": worker,
				"item":   fmt.Sprintf("item %d", n),
			})
			if err != nil {
				atomic.AddInt64(&failed, 1)
				fmt.Println("ERROR: append:", err.Error())
			}
		}
	})

	took := time.Since(t0)
	fmt.Println("sent:", c.N, "failed:", failed)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f records/sec\n", float64(c.N)/took.Seconds())
}
