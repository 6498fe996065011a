package loadgen

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// Submission is one rating payload to post.
type Submission struct {
	RateeID string         `json:"ratee_id"`
	RaterID string         `json:"rater_id"`
	Role    string         `json:"role"`
	Scores  map[string]int `json:"scores"`
	Email   string         `json:"email,omitempty"`
}

// randomScore returns a score in [1, max] using crypto/rand.
func randomScore(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64()) + 1
}

// randomScores builds a full score set over the given competencies.
func randomScores(competencies []string, scaleMax int) map[string]int {
	scores := make(map[string]int, len(competencies))
	for _, comp := range competencies {
		scores[comp] = randomScore(scaleMax)
	}
	return scores
}

// GenerateSubmissions builds one self record per ratee plus the configured
// number of peer and manager records, each from a distinct rater.
func GenerateSubmissions(cfg *Config, competencies []string, scaleMax int) []Submission {
	perRatee := 1 + cfg.PeersPerRatee + cfg.ManagersPerRatee
	out := make([]Submission, 0, cfg.Ratees*perRatee)

	for i := 0; i < cfg.Ratees; i++ {
		ratee := uuid.New().String()

		out = append(out, Submission{
			RateeID: ratee,
			RaterID: ratee,
			Role:    "self",
			Scores:  randomScores(competencies, scaleMax),
		})
		for p := 0; p < cfg.PeersPerRatee; p++ {
			out = append(out, Submission{
				RateeID: ratee,
				RaterID: uuid.New().String(),
				Role:    "peer",
				Scores:  randomScores(competencies, scaleMax),
			})
		}
		for m := 0; m < cfg.ManagersPerRatee; m++ {
			out = append(out, Submission{
				RateeID: ratee,
				RaterID: uuid.New().String(),
				Role:    "manager",
				Scores:  randomScores(competencies, scaleMax),
			})
		}
	}
	return out
}
