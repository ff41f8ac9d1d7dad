package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/service"
	"github.com/qs-lzh/train-ticket/internal/service/domain"
)

func seedUnpaidBooking(t *testing.T, repo *fakeBookingRepo, userID uint) *model.Booking {
	t.Helper()
	booking := &model.Booking{
		UserID:          userID,
		TrainID:         1,
		PassengerName:   "Alice",
		PassengerAge:    30,
		PassengerGender: model.GenderFemale,
		TravelDate:      time.Now().UTC().Add(24 * time.Hour),
		SeatClass:       model.SeatClassEconomy,
		Fare:            450.0,
		BookedAt:        time.Now().UTC(),
	}
	if err := repo.Create(booking); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
}

func TestPayTransitionsOnce(t *testing.T) {
	repo := newFakeBookingRepo()
	booking := seedUnpaidBooking(t, repo, 1)
	svc := domain.NewPaymentService(repo)

	paid, newlyPaid, err := svc.Pay(1, booking.ID)
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if !newlyPaid {
		t.Fatalf("first Pay reported not newly paid")
	}
	if !paid.Paid || paid.TransactionID == "" || paid.PaidAt == nil {
		t.Fatalf("paid booking missing transition fields: %+v", paid)
	}
	firstTx := paid.TransactionID

	// second submission is a no-op, same transaction id, no re-processing
	again, newlyPaid, err := svc.Pay(1, booking.ID)
	if err != nil {
		t.Fatalf("second Pay: %v", err)
	}
	if newlyPaid {
		t.Fatalf("second Pay claimed a fresh transition")
	}
	if again.TransactionID != firstTx {
		t.Errorf("transaction id changed on resubmission: %q != %q", again.TransactionID, firstTx)
	}
}

func TestPayOwnershipAndExistence(t *testing.T) {
	repo := newFakeBookingRepo()
	booking := seedUnpaidBooking(t, repo, 1)
	svc := domain.NewPaymentService(repo)

	if _, _, err := svc.Pay(2, booking.ID); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("foreign user: err = %v, want ErrUnauthorized", err)
	}
	if _, _, err := svc.Pay(1, 999); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("unknown booking: err = %v, want ErrNotFound", err)
	}

	stored, _ := repo.GetByID(booking.ID)
	if stored.Paid {
		t.Errorf("rejected payment attempts must leave the booking unpaid")
	}
}

func TestPayPersistenceFailureStaysUnpaid(t *testing.T) {
	repo := newFakeBookingRepo()
	booking := seedUnpaidBooking(t, repo, 1)
	repo.failMarkPaid = errRepoBroken
	svc := domain.NewPaymentService(repo)

	_, _, err := svc.Pay(1, booking.ID)
	if !errors.Is(err, service.ErrPaymentProcessing) {
		t.Fatalf("err = %v, want ErrPaymentProcessing", err)
	}

	stored, _ := repo.GetByID(booking.ID)
	if stored.Paid || stored.TransactionID != "" {
		t.Errorf("failed transition must not partially commit: %+v", stored)
	}
}

func TestPayLostRaceBehavesLikeAlreadyPaid(t *testing.T) {
	repo := newFakeBookingRepo()
	booking := seedUnpaidBooking(t, repo, 1)
	svc := domain.NewPaymentService(repo)

	// another request wins between the read and the conditional update
	if ok, _ := repo.MarkPaid(booking.ID, "tx-winner", time.Now().UTC()); !ok {
		t.Fatalf("setup MarkPaid failed")
	}

	paid, newlyPaid, err := svc.Pay(1, booking.ID)
	if err != nil {
		t.Fatalf("Pay after lost race: %v", err)
	}
	if newlyPaid {
		t.Fatalf("loser reported a fresh transition")
	}
	if paid.TransactionID != "tx-winner" {
		t.Errorf("loser must observe the winner's transaction id, got %q", paid.TransactionID)
	}
}
