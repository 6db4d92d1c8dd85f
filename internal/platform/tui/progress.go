package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-gems/internal/storage"
)

// Progress is a player's saved stage progress as shown by the menus.
type Progress struct {
	Key       string // Storage key, see RecordKey
	MaxStages int
	Unlocked  int // Highest stage the player may start
	UnlockAll bool
	Records   map[int]storage.StageRecord
}

// NewProgress returns progress for a player who has cleared nothing.
func NewProgress(key string, maxStages int) Progress {
	return Progress{
		Key:       key,
		MaxStages: maxStages,
		Unlocked:  1,
		Records:   make(map[int]storage.StageRecord),
	}
}

// LoadProgress reads a player's stage records. A nil store yields fresh progress.
func LoadProgress(store *storage.Store, key string, maxStages int) (Progress, error) {
	p := NewProgress(key, maxStages)
	if store == nil {
		return p, nil
	}

	records, err := store.StageRecords(key)
	if err != nil {
		return p, fmt.Errorf("tui: load stage records: %w", err)
	}
	for _, r := range records {
		p.Records[r.Stage] = r
	}

	unlocked, err := store.HighestUnlockedStage(key, maxStages)
	if err != nil {
		return p, fmt.Errorf("tui: load unlocked stage: %w", err)
	}
	p.Unlocked = unlocked
	return p, nil
}

// IsUnlocked reports whether the stage can be started.
func (p Progress) IsUnlocked(stage int) bool {
	if stage < 1 || stage > p.MaxStages {
		return false
	}
	return p.UnlockAll || stage <= p.Unlocked
}

// Stars returns the best star rating for a stage.
func (p Progress) Stars(stage int) int {
	return p.Records[stage].Stars
}

// TotalStars sums the best rating of every stage.
func (p Progress) TotalStars() int {
	total := 0
	for _, r := range p.Records {
		total += r.Stars
	}
	return total
}

// ContinueStage returns the stage the Continue entry starts.
func (p Progress) ContinueStage() int {
	if p.Unlocked < 1 {
		return 1
	}
	return min(p.Unlocked, p.MaxStages)
}
