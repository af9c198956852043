package monitor

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/techgit41/Advanced-Todo-App/internal/services/hub"
)

// Monitor polls the document store and the live-update hub so the health
// endpoint can answer without touching either on the request path.
type Monitor struct {
	db  *mongo.Client
	hub *hub.Hub

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(db *mongo.Client, h *hub.Hub, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		db:       db,
		hub:      h,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.MongoDB
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		MongoDB:   m.checkMongo(),
		LastCheck: time.Now(),
	}
	if m.hub != nil {
		status.Subscribers = m.hub.SubscriberCount()
	}

	m.mu.Lock()
	wasOnline := m.status.MongoDB
	m.status = status
	m.mu.Unlock()

	if wasOnline && !status.MongoDB {
		m.logger.Warn("document store went offline")
	}
}

func (m *Monitor) checkMongo() bool {
	if m.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.db.Ping(ctx, nil) == nil
}
