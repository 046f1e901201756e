package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/studio609/Studio-BookingService/internal/infra/storage/booking"
	"github.com/studio609/Studio-BookingService/internal/service/bookings/models"
)

// Service сервис чтения записей бронирования
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByRef получает запись бронирования по её reference
func (s *Service) GetByRef(ctx context.Context, ref string) (*models.BookingResponse, error) {
	s.logger.Info("GetByRef: fetching booking ref=%s", ref)

	booking, err := s.bookingRepo.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByRef: booking ref=%s not found", ref)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByRef: repository error for booking ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: GetByRef - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}
