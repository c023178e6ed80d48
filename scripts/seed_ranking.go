// seed_ranking.go: standalone script to load scores from a CSV file into a
// session ranking via the Appraise API.
//
// The CSV has the columns subject,discipline,achievement,attitude. A header
// row is skipped when its first score column is not a number.
//
// Usage:
//
//	go run scripts/seed_ranking.go -csv scores.csv -api http://localhost:8700 -session class-7
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type submission struct {
	Subject     string  `json:"subject"`
	Discipline  float64 `json:"discipline"`
	Achievement float64 `json:"achievement"`
	Attitude    float64 `json:"attitude"`
}

func main() {
	csvPath := flag.String("csv", "scores.csv", "path to CSV file")
	apiURL := flag.String("api", "http://localhost:8700", "Appraise API base URL")
	session := flag.String("session", "seed", "X-Session-ID header value")
	dryRun := flag.Bool("dry-run", false, "print rows without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4
	r.TrimLeadingSpace = true

	var items []submission
	line := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			log.Fatalf("read csv line %d: %v", line, err)
		}

		scores := make([]float64, 3)
		bad := false
		for i, cell := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				bad = true
				break
			}
			scores[i] = v
		}
		if bad {
			if line == 1 {
				continue
			}
			log.Printf("skip line %d: scores must be numbers", line)
			continue
		}

		items = append(items, submission{
			Subject:     strings.TrimSpace(row[0]),
			Discipline:  scores[0],
			Achievement: scores[1],
			Attitude:    scores[2],
		})
	}

	log.Printf("parsed %d rows from %s", len(items), *csvPath)

	if *dryRun {
		for i, item := range items {
			fmt.Printf("[%d] %s (discipline=%g, achievement=%g, attitude=%g)\n",
				i+1, item.Subject, item.Discipline, item.Achievement, item.Attitude)
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, item := range items {
		body, _ := json.Marshal(item)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/evaluations", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", item.Subject, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Session-ID", *session)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", item.Subject, err)
			skipped++
			continue
		}

		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			var apiErr struct {
				Error string `json:"error"`
			}
			_ = json.NewDecoder(resp.Body).Decode(&apiErr)
			log.Printf("skip %q: status %d %s", item.Subject, resp.StatusCode, apiErr.Error)
			skipped++
		}
		resp.Body.Close()
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}
