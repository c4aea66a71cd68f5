package model

import (
	"encoding/json"
	"time"
)

type Contest struct {
	Platform  Platform      `json:"platform"`
	Name      string        `json:"name"`
	URL       string        `json:"url"`
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"-"`
}

func (c Contest) MarshalJSON() ([]byte, error) {
	type alias Contest
	return json.Marshal(struct {
		alias
		DurationSeconds int64 `json:"durationSeconds"`
	}{alias(c), int64(c.Duration / time.Second)})
}

func (c *Contest) UnmarshalJSON(b []byte) error {
	type alias Contest
	var v struct {
		alias
		DurationSeconds int64 `json:"durationSeconds"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = Contest(v.alias)
	c.Duration = time.Duration(v.DurationSeconds) * time.Second
	return nil
}
