// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package episode

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// GameScore is the record of one finished game.
type GameScore struct {
	Game   int
	Score  float32
	Steps  int
	Reason Reason
}

// ScoreLog records one row per finished game.
type ScoreLog struct {
	Games []GameScore
}

// NewScoreLog returns an empty score log.
func NewScoreLog() *ScoreLog {
	return &ScoreLog{}
}

// Add appends a finished game.
func (sl *ScoreLog) Add(game int, score float32, steps int, reason Reason) {
	sl.Games = append(sl.Games, GameScore{Game: game, Score: score, Steps: steps, Reason: reason})
}

// Len returns the number of games logged.
func (sl *ScoreLog) Len() int {
	return len(sl.Games)
}

// Score returns the score of the i-th logged game.
func (sl *ScoreLog) Score(i int) float32 {
	return sl.Games[i].Score
}

// Reason returns the ending reason of the i-th logged game.
func (sl *ScoreLog) Reason(i int) string {
	return sl.Games[i].Reason.String()
}

// WriteCSV writes the log as comma separated values with a header row.
func (sl *ScoreLog) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"Game", "Score", "Steps", "Reason"})
	for _, g := range sl.Games {
		cw.Write([]string{
			strconv.Itoa(g.Game),
			strconv.FormatFloat(float64(g.Score), 'g', -1, 32),
			strconv.Itoa(g.Steps),
			g.Reason.String(),
		})
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the log to a CSV file.
func (sl *ScoreLog) SaveCSV(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := sl.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
