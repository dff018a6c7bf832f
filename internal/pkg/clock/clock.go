package clock

import "time"

// Clock は現在時刻の取得を抽象化する
// 有効期限の判定と回収処理を決定的にテストするために注入する
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem は time.Now を返すクロックを作成する
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// FixedClock は常に同じ時刻を返すクロック（テスト用）
type FixedClock struct {
	now time.Time
}

// NewFixed は固定時刻のクロックを作成する
func NewFixed(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

func (f *FixedClock) Now() time.Time {
	return f.now
}

// Advance は固定クロックを進める
func (f *FixedClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}
