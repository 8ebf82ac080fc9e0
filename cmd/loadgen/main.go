// Command loadgen posts synthetic rounds at a target service and
// reports score and leaderboard outcomes. Intended for smoke testing a
// deployment running the mock oracle provider.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// Canned oracle phrasings covering every category combination the
// extractor recognizes.
var oracleTexts = []string{
	"This looks like recyclable plastic.",
	"Just an old banana peel, great for compost!",
	"A crumpled chip bag: that is trash.",
	"I see a glass bottle for recycling and food scraps for compost.",
	"Mixed pile: garbage, recycling and compost all present.",
	"Nothing relevant here, just a rock.",
}

var categories = []string{"trash", "recycling", "compost"}

type roundRequest struct {
	RoundID    string   `json:"round_id"`
	Player     string   `json:"player"`
	Predicted  []string `json:"predicted"`
	OracleText string   `json:"oracle_text"`
}

type roundResponse struct {
	Player string   `json:"player"`
	Score  int      `json:"score"`
	Actual []string `json:"actual"`
}

func main() {
	addr := flag.String("addr", "http://localhost:9090", "service base URL")
	rounds := flag.Int("rounds", 100, "number of rounds to submit")
	players := flag.Int("players", 5, "number of distinct players")
	delay := flag.Duration("delay", 10*time.Millisecond, "pause between rounds")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	var scored, failed int

	for i := 0; i < *rounds; i++ {
		req := roundRequest{
			RoundID:    uuid.NewString(),
			Player:     fmt.Sprintf("player-%d", rand.IntN(*players)+1),
			Predicted:  randomPrediction(),
			OracleText: oracleTexts[rand.IntN(len(oracleTexts))],
		}
		if err := postRound(client, *addr, req); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "round %s failed: %v\n", req.RoundID, err)
		} else {
			scored++
		}
		time.Sleep(*delay)
	}

	fmt.Printf("submitted %d rounds: %d scored, %d failed\n", *rounds, scored, failed)
	printLeaderboard(client, *addr)
}

func randomPrediction() []string {
	n := rand.IntN(len(categories)) + 1
	picked := append([]string(nil), categories...)
	rand.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	return picked[:n]
}

func postRound(client *http.Client, addr string, req roundRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	resp, err := client.Post(addr+"/rounds", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var rr roundResponse
	return json.NewDecoder(resp.Body).Decode(&rr)
}

func printLeaderboard(client *http.Client, addr string) {
	resp, err := client.Get(addr + "/leaderboard")
	if err != nil {
		fmt.Fprintf(os.Stderr, "leaderboard fetch failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var entries []struct {
		Rank   int    `json:"rank"`
		Player string `json:"player"`
		Score  int    `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		fmt.Fprintf(os.Stderr, "leaderboard decode failed: %v\n", err)
		return
	}
	fmt.Println("leaderboard:")
	for _, e := range entries {
		fmt.Printf("  %2d. %-12s %d\n", e.Rank, e.Player, e.Score)
	}
}
