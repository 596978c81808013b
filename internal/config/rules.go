package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Rules holds the tunable numbers of the matching and gamification engine.
type Rules struct {
	// XP awarded on session transitions.
	AcceptReceiverXP   int `koanf:"accept_receiver_xp"`
	CompleteReceiverXP int `koanf:"complete_receiver_xp"`
	CompleteSenderXP   int `koanf:"complete_sender_xp"`

	// XP awarded by the rating policy.
	HighRatingThreshold int `koanf:"high_rating_threshold"`
	HighRatingXP        int `koanf:"high_rating_xp"`
	RaterXP             int `koanf:"rater_xp"`

	// AIMatchScore is the flat score given to candidates returned by the AI oracle.
	AIMatchScore int `koanf:"ai_match_score"`
	// AIMatchCacheTTL bounds how long an oracle answer is reused for the same query.
	AIMatchCacheTTL time.Duration `koanf:"ai_match_cache_ttl"`

	// QuizPassMark is the number of correct answers needed to verify a skill.
	QuizPassMark int           `koanf:"quiz_pass_mark"`
	QuizPassXP   int           `koanf:"quiz_pass_xp"`
	QuizTTL      time.Duration `koanf:"quiz_ttl"`

	LeaderboardSize int `koanf:"leaderboard_size"`
}

func DefaultRules() Rules {
	return Rules{
		AcceptReceiverXP:    10,
		CompleteReceiverXP:  50,
		CompleteSenderXP:    10,
		HighRatingThreshold: 4,
		HighRatingXP:        50,
		RaterXP:             5,
		AIMatchScore:        100,
		AIMatchCacheTTL:     10 * time.Minute,
		QuizPassMark:        3,
		QuizPassXP:          20,
		QuizTTL:             30 * time.Minute,
		LeaderboardSize:     10,
	}
}

// LoadRules layers (low -> high precedence):
//  1. DefaultRules()
//  2. YAML file named by COLLABHUB_RULES, if set
//  3. COLLABHUB_* environment variables (COLLABHUB_RATER_XP -> rater_xp)
func LoadRules() (Rules, error) {
	k := koanf.New(".")

	if path := os.Getenv("COLLABHUB_RULES"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Rules{}, err
		}
	}

	envProvider := env.Provider("COLLABHUB_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "collabhub_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Rules{}, err
	}

	rules := DefaultRules()
	if err := k.UnmarshalWithConf("", &rules, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Rules{}, err
	}

	if err := rules.validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

func (r Rules) validate() error {
	if r.AcceptReceiverXP <= 0 || r.CompleteReceiverXP <= 0 || r.CompleteSenderXP <= 0 {
		return errors.New("session rewards must be positive")
	}
	if r.HighRatingXP <= 0 || r.RaterXP <= 0 || r.QuizPassXP <= 0 {
		return errors.New("rating rewards must be positive")
	}
	if r.HighRatingThreshold < 1 || r.HighRatingThreshold > 5 {
		return errors.New("high_rating_threshold must be between 1 and 5")
	}
	if r.AIMatchScore < 0 {
		return errors.New("ai_match_score must not be negative")
	}
	if r.LeaderboardSize <= 0 {
		return errors.New("leaderboard_size must be positive")
	}
	return nil
}
