package service

import (
	"testing"

	"github.com/pizzame/backend/internal/constants"
)

func TestOrderStatusMachine(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusPreparing, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPreparing, constants.OrderStatusReady, true},
		{constants.OrderStatusPreparing, constants.OrderStatusCancelled, true},
		{constants.OrderStatusReady, constants.OrderStatusOutForDelivery, true},
		{constants.OrderStatusReady, constants.OrderStatusCancelled, false},
		{constants.OrderStatusOutForDelivery, constants.OrderStatusDelivered, true},
		{constants.OrderStatusDelivered, constants.OrderStatusRefunded, true},
		{constants.OrderStatusDelivered, constants.OrderStatusPreparing, false},
		{constants.OrderStatusCancelled, constants.OrderStatusConfirmed, false},
		{constants.OrderStatusRefunded, constants.OrderStatusPending, false},
		// 原地迁移幂等
		{constants.OrderStatusDelivered, constants.OrderStatusDelivered, true},
		{constants.OrderStatusCancelled, constants.OrderStatusCancelled, true},
	}
	for _, tc := range cases {
		if got := isOrderTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Fatalf("order %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestPreparationStatusMachine(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.PreparationStatusPending, constants.PreparationStatusPreparing, true},
		{constants.PreparationStatusPreparing, constants.PreparationStatusReady, true},
		{constants.PreparationStatusPending, constants.PreparationStatusReady, false},
		{constants.PreparationStatusReady, constants.PreparationStatusPreparing, false},
		{constants.PreparationStatusReady, constants.PreparationStatusReady, true},
	}
	for _, tc := range cases {
		if got := isPreparationTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Fatalf("preparation %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestPaymentStatusMachine(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.PaymentStatusPending, constants.PaymentStatusProcessing, true},
		{constants.PaymentStatusPending, constants.PaymentStatusFailed, true},
		{constants.PaymentStatusPending, constants.PaymentStatusCompleted, false},
		{constants.PaymentStatusProcessing, constants.PaymentStatusCompleted, true},
		{constants.PaymentStatusProcessing, constants.PaymentStatusFailed, true},
		{constants.PaymentStatusCompleted, constants.PaymentStatusRefunded, true},
		{constants.PaymentStatusCompleted, constants.PaymentStatusFailed, false},
		{constants.PaymentStatusFailed, constants.PaymentStatusProcessing, false},
		{constants.PaymentStatusRefunded, constants.PaymentStatusPending, false},
	}
	for _, tc := range cases {
		if got := isPaymentTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Fatalf("payment %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestDeliveryStatusMachine(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.DeliveryStatusAssigned, constants.DeliveryStatusInTransit, true},
		{constants.DeliveryStatusAssigned, constants.DeliveryStatusDelivered, false},
		{constants.DeliveryStatusInTransit, constants.DeliveryStatusDelivered, true},
		{constants.DeliveryStatusInTransit, constants.DeliveryStatusFailed, true},
		{constants.DeliveryStatusDelivered, constants.DeliveryStatusInTransit, false},
		{constants.DeliveryStatusFailed, constants.DeliveryStatusInTransit, false},
	}
	for _, tc := range cases {
		if got := isDeliveryTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Fatalf("delivery %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
