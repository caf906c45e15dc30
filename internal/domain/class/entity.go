package class

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout はクラス日付の保存形式
const DateLayout = "2006-01-02"

// Class は予約可能なクラス（フィットネスセッション等）を表す
type Class struct {
	ID             string
	Name           string
	Date           string
	Time           string
	Description    string
	Capacity       int
	SpotsRemaining int
	IsActive       bool
}

// NewClass は新しいクラスを作成する（残席数は定員と同じ）
func NewClass(name, date, timeOfDay, description string, capacity int, isActive bool) *Class {
	return &Class{
		ID:             NewID(time.Now()),
		Name:           name,
		Date:           date,
		Time:           timeOfDay,
		Description:    description,
		Capacity:       capacity,
		SpotsRemaining: capacity,
		IsActive:       isActive,
	}
}

// NewID は作成時刻から派生したクラスIDを生成する
func NewID(now time.Time) string {
	return fmt.Sprintf("class-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// Validate はクラスの検証を行う
func (c *Class) Validate() error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Date) == "" || strings.TrimSpace(c.Time) == "" {
		return ErrMissingRequiredFields
	}
	if c.Capacity < 0 {
		return ErrInvalidCapacity
	}
	if c.SpotsRemaining < 0 || c.SpotsRemaining > c.Capacity {
		return ErrInvalidSpotsRemaining
	}
	return nil
}

// Consumed は予約済みの席数を返す
func (c *Class) Consumed() int {
	return c.Capacity - c.SpotsRemaining
}

// IsFull は残席がないかを返す
func (c *Class) IsFull() bool {
	return c.SpotsRemaining <= 0
}

// ChangeCapacity は予約済み席数を保ったまま定員を変更する
// 新しい定員が予約済み席数を下回る場合、残席は0になる
func (c *Class) ChangeCapacity(capacity int) error {
	if capacity < 0 {
		return ErrInvalidCapacity
	}
	consumed := c.Consumed()
	c.Capacity = capacity
	c.SpotsRemaining = max(0, capacity-consumed)
	return nil
}

// ParsedDate は日付をパースする。パースできない場合は false を返す
func (c *Class) ParsedDate() (time.Time, bool) {
	t, err := time.Parse(DateLayout, c.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CompareByDate は日付の昇順で比較する
// パースできない日付はパースできる日付より後ろに並ぶ
func CompareByDate(a, b *Class) int {
	ta, okA := a.ParsedDate()
	tb, okB := b.ParsedDate()
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a.Date, b.Date)
	}
}
