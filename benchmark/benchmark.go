package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

type requestPayload struct {
	VoiceDescription string `json:"voice_description"`
}

type BenchmarkClient struct {
	baseURL      string
	format       string
	auth         string
	descriptions []string
	descIndex    uint64
	client       *http.Client
}

type runResult struct {
	duration         time.Duration
	success          bool
	statusCode       int
	err              error
	firstByteLatency time.Duration
}

func newBenchmarkClient(baseURL, format, auth string, descriptions []string) *BenchmarkClient {
	return &BenchmarkClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		format:       format,
		auth:         auth,
		descriptions: descriptions,
		client: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

func (c *BenchmarkClient) nextDescription() string {
	idx := atomic.AddUint64(&c.descIndex, 1)
	return c.descriptions[(idx-1)%uint64(len(c.descriptions))]
}

func (c *BenchmarkClient) Do(ctx context.Context) runResult {
	start := time.Now()

	payload := requestPayload{VoiceDescription: c.nextDescription()}

	body, err := json.Marshal(payload)
	if err != nil {
		return runResult{err: fmt.Errorf("encode request: %w", err)}
	}

	endpoint := c.baseURL + "/v1/text-to-voice/design"
	if c.format != "" {
		endpoint += "?output_format=" + url.QueryEscape(c.format)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return runResult{err: fmt.Errorf("build request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ttv-benchmark/0.1")
	if c.auth != "" {
		req.Header.Set("Authorization", "Bearer "+c.auth)
	}

	var firstByteLatency time.Duration

	trace := &httptrace.ClientTrace{
		GotFirstResponseByte: func() {
			firstByteLatency = time.Since(start)
		},
	}

	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))

	resp, err := c.client.Do(req)
	if err != nil {
		return runResult{duration: time.Since(start), err: err}
	}
	defer resp.Body.Close()

	_, err = io.Copy(io.Discard, resp.Body)

	duration := time.Since(start)
	success := err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300

	return runResult{
		duration:         duration,
		success:          success,
		statusCode:       resp.StatusCode,
		err:              err,
		firstByteLatency: firstByteLatency,
	}
}

type summary struct {
	durations          []time.Duration
	firstByteLatencies []time.Duration
	statusCodes        map[int]int
	total              int
	success            int
	shed               int
}

func (s *summary) add(result runResult) {
	s.total++
	if result.statusCode > 0 {
		if s.statusCodes == nil {
			s.statusCodes = make(map[int]int)
		}
		s.statusCodes[result.statusCode]++
	}
	// the relay answers 503 when its upstream queue is full; track shed
	// load separately from real failures
	if result.statusCode == http.StatusServiceUnavailable {
		s.shed++
	}
	if result.success {
		s.success++
		s.durations = append(s.durations, result.duration)
		if result.firstByteLatency > 0 {
			s.firstByteLatencies = append(s.firstByteLatencies, result.firstByteLatency)
		}
	}
}

func percentile(values []time.Duration, p float64) time.Duration {
	if len(values) == 0 {
		return 0
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	rank := p * float64(len(values)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(values) {
		return values[lower]
	}
	weight := rank - float64(lower)
	return time.Duration(float64(values[lower])*(1-weight) + float64(values[upper])*weight)
}

func average(values []time.Duration) time.Duration {
	if len(values) == 0 {
		return 0
	}
	var total time.Duration
	for _, v := range values {
		total += v
	}
	return total / time.Duration(len(values))
}

func loadDescriptions(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func main() {
	baseURL := flag.String("base-url", "http://127.0.0.1:8080", "Benchmark target base URL")
	count := flag.Int("count", 10, "Number of requests to send")
	concurrency := flag.Int("concurrency", 1, "Number of concurrent workers")
	description := flag.String("description", "a calm narrator with a low, steady pitch", "Voice description to design")
	descriptionsFile := flag.String("descriptions", "", "Path to JSON file with an array of voice descriptions")
	format := flag.String("format", "", "output_format query parameter")
	auth := flag.String("auth", "", "Bearer token for relay authentication")
	loop := flag.Bool("loop", false, "Send requests continuously until interrupted")
	flag.Parse()

	descriptions := []string{*description}
	if *descriptionsFile != "" {
		loaded, err := loadDescriptions(*descriptionsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load descriptions: %v\n", err)
			os.Exit(1)
		}
		if len(loaded) > 0 {
			descriptions = loaded
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := newBenchmarkClient(*baseURL, *format, *auth, descriptions)

	jobs := make(chan struct{}, *concurrency)
	results := make(chan runResult, *concurrency)
	var workers sync.WaitGroup

	for i := 0; i < *concurrency; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results <- client.Do(ctx)
			}
		}()
	}

	go func() {
		if *loop {
			for {
				select {
				case <-ctx.Done():
					close(jobs)
					return
				case jobs <- struct{}{}:
				}
			}
		}

		for i := 0; i < *count; i++ {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			case jobs <- struct{}{}:
			}
		}
		close(jobs)
	}()

	go func() {
		workers.Wait()
		close(results)
	}()

	var sum summary
	for res := range results {
		sum.add(res)
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "request error: %v\n", res.err)
		}
	}

	fmt.Printf("Total requests: %d\n", sum.total)
	fmt.Printf("Success: %d, Failed: %d\n", sum.success, sum.total-sum.success)
	if sum.shed > 0 {
		fmt.Printf("Shed by relay (503): %d\n", sum.shed)
	}

	if len(sum.statusCodes) > 0 {
		codes := make([]int, 0, len(sum.statusCodes))
		for code := range sum.statusCodes {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		fmt.Println("Status codes:")
		for _, code := range codes {
			fmt.Printf("  %d: %d\n", code, sum.statusCodes[code])
		}
	}

	if len(sum.durations) > 0 {
		fmt.Printf("Average duration: %s\n", average(sum.durations))
		fmt.Printf("P50: %s\n", percentile(sum.durations, 0.50))
		fmt.Printf("P75: %s\n", percentile(sum.durations, 0.75))
		fmt.Printf("P90: %s\n", percentile(sum.durations, 0.90))
		fmt.Printf("P95: %s\n", percentile(sum.durations, 0.95))
	}

	if len(sum.firstByteLatencies) > 0 {
		fmt.Printf("Avg first byte: %s\n", average(sum.firstByteLatencies))
		fmt.Printf("P50 first byte: %s\n", percentile(sum.firstByteLatencies, 0.50))
	}
}
