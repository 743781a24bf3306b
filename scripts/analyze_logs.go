package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Summarizes one day of Velora log files: traffic, sign-ins, orders, offer
// activity and recurring errors. Run from the repository root after the
// server has written logs/ for the day.

type logStats struct {
	TotalRequests int
	FailedHTTP    int
	SignIns       int
	OrdersPlaced  int
	OffersCreated int
	OffersUpdated int
	OffersDeleted int
	TotalErrors   int
	ErrorPatterns map[string]int
	StatusCounts  map[string]int
}

var (
	statusRe = regexp.MustCompile(`Status: (\d{3})`)
	errorRe  = regexp.MustCompile(`ERROR: .*?: (.*?):`)
)

func main() {
	day := time.Now().Format("2006-01-02")
	if len(os.Args) > 1 {
		day = os.Args[1]
	}
	logDir := "./logs"

	stats := &logStats{
		ErrorPatterns: make(map[string]int),
		StatusCounts:  make(map[string]int),
	}

	analyzeInfoLog(filepath.Join(logDir, fmt.Sprintf("info-%s.log", day)), stats)
	analyzeErrorLog(filepath.Join(logDir, fmt.Sprintf("error-%s.log", day)), stats)
	printReport(day, stats)
}

func analyzeInfoLog(path string, stats *logStats) {
	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("no info log at %s\n", path)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "Request:"):
			stats.TotalRequests++
			if m := statusRe.FindStringSubmatch(line); m != nil {
				stats.StatusCounts[m[1]]++
				if m[1][0] == '4' || m[1][0] == '5' {
					stats.FailedHTTP++
				}
			}
		case strings.Contains(line, "signed in"):
			stats.SignIns++
		case strings.Contains(line, "placed by user"):
			stats.OrdersPlaced++
		case strings.Contains(line, "Offer") && strings.Contains(line, "created"):
			stats.OffersCreated++
		case strings.Contains(line, "Offer") && strings.Contains(line, "updated"):
			stats.OffersUpdated++
		case strings.Contains(line, "Offer") && strings.Contains(line, "deleted"):
			stats.OffersDeleted++
		}
	}
}

func analyzeErrorLog(path string, stats *logStats) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "ERROR:") {
			continue
		}
		stats.TotalErrors++
		pattern := line
		if m := errorRe.FindStringSubmatch(line); m != nil {
			pattern = m[1]
		} else if idx := strings.Index(line, "ERROR: "); idx >= 0 {
			pattern = line[idx+len("ERROR: "):]
			if len(pattern) > 60 {
				pattern = pattern[:60]
			}
		}
		stats.ErrorPatterns[pattern]++
	}
}

func printReport(day string, stats *logStats) {
	fmt.Printf("Velora log report for %s\n", day)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Requests:        %d (%d failed)\n", stats.TotalRequests, stats.FailedHTTP)
	fmt.Printf("Sign-ins:        %d\n", stats.SignIns)
	fmt.Printf("Orders placed:   %d\n", stats.OrdersPlaced)
	fmt.Printf("Offers:          %d created, %d updated, %d deleted\n",
		stats.OffersCreated, stats.OffersUpdated, stats.OffersDeleted)
	fmt.Printf("Errors:          %d\n", stats.TotalErrors)

	if len(stats.StatusCounts) > 0 {
		fmt.Println("\nStatus codes:")
		codes := make([]string, 0, len(stats.StatusCounts))
		for code := range stats.StatusCounts {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Printf("  %s: %d\n", code, stats.StatusCounts[code])
		}
	}

	if len(stats.ErrorPatterns) > 0 {
		fmt.Println("\nTop error patterns:")
		type kv struct {
			pattern string
			count   int
		}
		pairs := make([]kv, 0, len(stats.ErrorPatterns))
		for p, n := range stats.ErrorPatterns {
			pairs = append(pairs, kv{p, n})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].count > pairs[j].count })
		for i, pair := range pairs {
			if i >= 10 {
				break
			}
			fmt.Printf("  %3dx %s\n", pair.count, pair.pattern)
		}
	}
}
