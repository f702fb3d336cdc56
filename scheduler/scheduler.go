package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/Aravind-813/GigSphere/chat"
	"github.com/Aravind-813/GigSphere/repository"
	"github.com/Aravind-813/GigSphere/services"
	"github.com/Aravind-813/GigSphere/utils"
)

// DeadlineSweeper expires orders whose acceptance or payment window lapsed
// and closes chat rooms past their scheduled closure. It acts through the
// same state machine as users do, under the scheduler identity: an expiry
// that races a real accept or payment simply loses the conditional status
// write and is skipped.
type DeadlineSweeper struct {
	orders   *repository.OrderRepository
	service  *services.OrderService
	chat     *chat.Service
	interval time.Duration
	now      func() time.Time
}

// NewDeadlineSweeper returns a sweeper that scans on the given interval.
func NewDeadlineSweeper(orders *repository.OrderRepository, service *services.OrderService, chatService *chat.Service, interval time.Duration) *DeadlineSweeper {
	return &DeadlineSweeper{
		orders:   orders,
		service:  service,
		chat:     chatService,
		interval: interval,
		now:      time.Now,
	}
}

// Run sweeps until the context is cancelled. Call in a goroutine.
func (s *DeadlineSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	utils.LogInfo("Deadline sweeper running every %s", s.interval)
	for {
		select {
		case <-ctx.Done():
			utils.LogInfo("Deadline sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs one expiry pass.
func (s *DeadlineSweeper) Sweep() {
	now := s.now()

	expired, err := s.orders.ExpiredAcceptance(now)
	if err != nil {
		utils.LogError("Sweeper: failed to list expired acceptance orders: %v", err)
	} else {
		for _, order := range expired {
			if _, err := s.service.Decline(services.SystemActor, order.ID); err != nil {
				var invalidState *services.InvalidStateError
				if errors.As(err, &invalidState) {
					// Lost the race to a real accept or decline.
					continue
				}
				utils.LogError("Sweeper: failed to expire order %d: %v", order.ID, err)
				continue
			}
			utils.LogInfo("Sweeper: order %d declined, acceptance window expired", order.ID)
		}
	}

	unpaid, err := s.orders.ExpiredPayment(now)
	if err != nil {
		utils.LogError("Sweeper: failed to list expired payment orders: %v", err)
		return
	}
	for _, order := range unpaid {
		if _, err := s.service.Cancel(services.SystemActor, order.ID, "payment window expired"); err != nil {
			var invalidState *services.InvalidStateError
			if errors.As(err, &invalidState) {
				continue
			}
			utils.LogError("Sweeper: failed to cancel unpaid order %d: %v", order.ID, err)
			continue
		}
		utils.LogInfo("Sweeper: order %d cancelled, payment window expired", order.ID)
	}

	closed, err := s.chat.CloseDue(now)
	if err != nil {
		utils.LogError("Sweeper: failed to close due chat rooms: %v", err)
	} else if closed > 0 {
		utils.LogInfo("Sweeper: closed %d chat rooms", closed)
	}
}
