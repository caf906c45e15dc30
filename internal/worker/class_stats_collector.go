package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/fit365-classes/internal/domain/class"
	"github.com/sanosuguru/fit365-classes/internal/pkg/logger"
	"github.com/sanosuguru/fit365-classes/internal/pkg/metrics"
)

// ClassLister は全クラスを取得するインターフェース
type ClassLister interface {
	List(ctx context.Context) ([]*class.Class, error)
}

// ClassStatsCollector はクラスの公開数と残席数を定期的にゲージへ反映するワーカー
type ClassStatsCollector struct {
	classes  ClassLister
	metrics  *metrics.Metrics
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewClassStatsCollector は新しいコレクターを作成
func NewClassStatsCollector(cl ClassLister, m *metrics.Metrics, interval time.Duration) *ClassStatsCollector {
	return &ClassStatsCollector{
		classes:  cl,
		metrics:  m,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はコレクターを開始する。起動直後に一度収集する
func (c *ClassStatsCollector) Start(ctx context.Context) {
	logger.Info("クラス統計コレクター開始", zap.Duration("interval", c.interval))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	c.collect(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("クラス統計コレクター停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("クラス統計コレクター停止（シグナル受信）")
			return
		case <-ticker.C:
			c.collect(ctx)
		}
	}
}

// Stop はコレクターを停止し、終了を待つ
func (c *ClassStatsCollector) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// collect は全クラスを読み込んでゲージを更新する
// 残席ゲージは毎回作り直し、削除済みクラスのラベルを残さない
func (c *ClassStatsCollector) collect(ctx context.Context) {
	if c.metrics == nil {
		return
	}
	log := logger.Get()

	classes, err := c.classes.List(ctx)
	if err != nil {
		log.Error("クラス統計の収集失敗", zap.Error(err))
		return
	}

	active := 0
	c.metrics.ClassSpotsRemaining.Reset()
	for _, cl := range classes {
		if cl.IsActive {
			active++
		}
		c.metrics.ClassSpotsRemaining.WithLabelValues(cl.ID).Set(float64(cl.SpotsRemaining))
	}
	c.metrics.ActiveClasses.Set(float64(active))

	log.Debug("クラス統計を更新", zap.Int("classes", len(classes)), zap.Int("active", active))
}
