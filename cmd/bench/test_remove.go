package main

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fulldump/listdb/database"
	"github.com/fulldump/listdb/document"
)

func TestRemove(c Config) {

	createServer := c.Base == ""

	var dataDir string
	var stop func()
	if createServer {
		dataDir, stop = CreateServer(&c)
	}

	name := CreateDocument(c.Base)
	client := NewClient()

	fmt.Println("Preload records...")
	appendURL := c.Base + "/v1/documents/" + name + ":append"
	for i := int64(0); i < c.N; i++ {
		err := Post(client, appendURL, JSON{
			"id":    i,
			"value": 0,
		})
		if err != nil {
			fmt.Println("ERROR: preload:", err.Error())
			return
		}
	}

	removeURL := c.Base + "/v1/documents/" + name + ":remove"

	next := int64(-1)
	failed := int64(0)

	t0 := time.Now()
	Parallel(c.Workers, func(worker int) {
		for {
			key := atomic.AddInt64(&next, 1)
			if key >= c.N {
				return
			}
			err := Post(client, removeURL, JSON{"key": key})
			if err != nil {
				atomic.AddInt64(&failed, 1)
				fmt.Println("ERROR: remove:", err.Error())
			}
		}
	})

	took := time.Since(t0)
	fmt.Println("removed:", c.N, "failed:", failed)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f records/sec\n", float64(c.N)/took.Seconds())

	if !createServer {
		return
	}

	stop()

	t1 := time.Now()
	doc, err := document.Open(filepath.Join(dataDir, name+database.Extension), nil)
	if err != nil {
		fmt.Println("ERROR: open:", err.Error())
		return
	}
	fmt.Println("open took:", time.Since(t1), "records:", doc.Len())
}
