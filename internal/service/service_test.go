package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/lumipack/billing/internal/domain/models"
	"github.com/lumipack/billing/internal/service/mocks"
	"github.com/lumipack/billing/internal/storage"
)

const (
	testPaymentID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testUserID     = "06223dff-1f8f-4430-923f-1072e67e70ce"
	testReferrerID = "1cf50925-d72d-488b-94e5-426acce77f3c"
)

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*4)
	t.Cleanup(cancel)
	return ctx
}

func signedFields(ref, status string) map[string]string {
	return map[string]string{
		"provider_ref": ref,
		"status":       status,
		"amount":       "2990",
	}
}

func TestService_ApplyNotification_InvalidSignature(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	fields := signedFields("bank-777", "succeeded")
	verifier.On("Verify", "bank", fields, "bad-signature").Return(false)

	result, err := srv.ApplyNotification(testContext(t), models.ProviderBank, models.Notification{
		ProviderRef:    "bank-777",
		ReportedStatus: "succeeded",
		Signature:      "bad-signature",
		Fields:         fields,
	})

	assert.ErrorIs(t, err, models.ErrInvalidSignature)
	assert.Nil(t, result)
}

func TestService_ApplyNotification_UnknownPayment(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	fields := signedFields("bank-nope", "succeeded")
	verifier.On("Verify", "bank", fields, "sig").Return(true)
	stor.On("PaymentByProviderRef", mock.Anything, "bank", "bank-nope").
		Return(nil, storage.ErrNoRecordsFound)

	result, err := srv.ApplyNotification(testContext(t), models.ProviderBank, models.Notification{
		ProviderRef:    "bank-nope",
		ReportedStatus: "succeeded",
		Signature:      "sig",
		Fields:         fields,
	})

	assert.ErrorIs(t, err, models.ErrUnknownPayment)
	assert.Nil(t, result)
}

func TestService_ApplyNotification_Succeeded(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	payment := &storage.Payment{
		PaymentID:   testPaymentID,
		UserID:      testUserID,
		Provider:    "bank",
		ProviderRef: "bank-777",
		Amount:      2990,
		Currency:    "RUB",
		Status:      "pending",
	}

	fields := signedFields("bank-777", "succeeded")
	verifier.On("Verify", "bank", fields, "sig").Return(true)
	stor.On("PaymentByProviderRef", mock.Anything, "bank", "bank-777").
		Return(payment, nil)
	stor.On("MarkPaymentSucceeded", mock.Anything, testPaymentID).
		Return(true, nil)
	// побочный эффект: создание pending-начисления
	stor.On("PaymentByID", mock.Anything, testPaymentID).
		Return(payment, nil)
	stor.On("ReferrerByReferred", mock.Anything, testUserID).
		Return(testReferrerID, nil)
	stor.On("ReferrerProfile", mock.Anything, testReferrerID).
		Return(nil, storage.ErrNoRecordsFound)
	rates.On("Rate", (*models.ReferrerProfile)(nil)).Return(0.10)
	stor.On("CreateEarning", mock.Anything, storage.CreateEarning{
		PaymentID:    testPaymentID,
		ReferrerID:   testReferrerID,
		ReferredID:   testUserID,
		Amount:       299,
		Rate:         0.10,
		NativeAmount: 2990,
		Currency:     "RUB",
	}).Return(true, nil)

	result, err := srv.ApplyNotification(testContext(t), models.ProviderBank, models.Notification{
		ProviderRef:    "bank-777",
		ReportedStatus: "succeeded",
		Signature:      "sig",
		Fields:         fields,
	})

	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, models.PaymentPending, result.PreviousStatus)
	assert.Equal(t, models.PaymentSucceeded, result.NewStatus)
}

func TestService_ApplyNotification_DuplicateSucceeded(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	payment := &storage.Payment{
		PaymentID:   testPaymentID,
		UserID:      testUserID,
		Provider:    "bank",
		ProviderRef: "bank-777",
		Amount:      2990,
		Currency:    "RUB",
		Status:      "succeeded",
	}

	fields := signedFields("bank-777", "succeeded")
	verifier.On("Verify", "bank", fields, "sig").Return(true)
	stor.On("PaymentByProviderRef", mock.Anything, "bank", "bank-777").
		Return(payment, nil)
	// переход уже случился, начисление не создается повторно
	stor.On("MarkPaymentSucceeded", mock.Anything, testPaymentID).
		Return(false, nil)

	result, err := srv.ApplyNotification(testContext(t), models.ProviderBank, models.Notification{
		ProviderRef:    "bank-777",
		ReportedStatus: "succeeded",
		Signature:      "sig",
		Fields:         fields,
	})

	require.NoError(t, err)
	assert.False(t, result.Applied)
	stor.AssertNotCalled(t, "CreateEarning", mock.Anything, mock.Anything)
}

func TestService_ApplyNotification_UnrecognizedStatus(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	payment := &storage.Payment{
		PaymentID: testPaymentID,
		UserID:    testUserID,
		Provider:  "bank",
		Status:    "pending",
	}

	fields := signedFields("bank-777", "on_hold")
	verifier.On("Verify", "bank", fields, "sig").Return(true)
	stor.On("PaymentByProviderRef", mock.Anything, "bank", "bank-777").
		Return(payment, nil)

	result, err := srv.ApplyNotification(testContext(t), models.ProviderBank, models.Notification{
		ProviderRef:    "bank-777",
		ReportedStatus: "on_hold",
		Signature:      "sig",
		Fields:         fields,
	})

	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, models.PaymentPending, result.NewStatus)
	stor.AssertNotCalled(t, "MarkPaymentSucceeded", mock.Anything, mock.Anything)
	stor.AssertNotCalled(t, "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ApplyNotification_RefundCancelsEarning(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	payment := &storage.Payment{
		PaymentID: testPaymentID,
		UserID:    testUserID,
		Provider:  "bank",
		Status:    "succeeded",
	}

	fields := signedFields("bank-777", "refunded")
	verifier.On("Verify", "bank", fields, "sig").Return(true)
	stor.On("PaymentByProviderRef", mock.Anything, "bank", "bank-777").
		Return(payment, nil)
	stor.On("SetPaymentStatus", mock.Anything, testPaymentID, "refunded").
		Return(nil)
	stor.On("CancelEarning", mock.Anything, testPaymentID, "payment refunded").
		Return(true, nil)

	result, err := srv.ApplyNotification(testContext(t), models.ProviderBank, models.Notification{
		ProviderRef:    "bank-777",
		ReportedStatus: "refunded",
		Signature:      "sig",
		Fields:         fields,
	})

	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, models.PaymentRefunded, result.NewStatus)
}

func TestService_ApplyNotification_RefundConflict(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	payment := &storage.Payment{
		PaymentID: testPaymentID,
		UserID:    testUserID,
		Provider:  "bank",
		Status:    "succeeded",
	}

	fields := signedFields("bank-777", "refunded")
	verifier.On("Verify", "bank", fields, "sig").Return(true)
	stor.On("PaymentByProviderRef", mock.Anything, "bank", "bank-777").
		Return(payment, nil)
	stor.On("SetPaymentStatus", mock.Anything, testPaymentID, "refunded").
		Return(nil)
	// начисление уже на балансе, отменить нельзя
	stor.On("CancelEarning", mock.Anything, testPaymentID, "payment refunded").
		Return(false, nil)
	stor.On("EarningByPaymentID", mock.Anything, testPaymentID).
		Return(&storage.Earning{
			EarningID: "earn-1",
			PaymentID: testPaymentID,
			Status:    "credited",
		}, nil)

	result, err := srv.ApplyNotification(testContext(t), models.ProviderBank, models.Notification{
		ProviderRef:    "bank-777",
		ReportedStatus: "refunded",
		Signature:      "sig",
		Fields:         fields,
	})

	// возврат применен, но конфликт виден вызывающему
	assert.ErrorIs(t, err, models.ErrEarningAlreadyCredited)
	require.NotNil(t, result)
	assert.True(t, result.Applied)
}

func TestService_CreatePendingEarning(t *testing.T) {
	type mockParam struct {
		payment    *storage.Payment
		paymentErr error

		callReferrer bool
		referrerID   string
		referrerErr  error

		callProfile bool
		profile     *storage.ReferrerProfile
		profileErr  error

		rate float64

		callCreate bool
		earning    storage.CreateEarning
		created    bool
	}

	tests := []struct {
		name        string
		mock        mockParam
		wantOutcome models.EarningOutcome
		wantErr     error
	}{
		{
			name: "платеж через stars пропускается",
			mock: mockParam{
				payment: &storage.Payment{
					PaymentID: testPaymentID,
					UserID:    testUserID,
					Provider:  "stars",
					Amount:    500,
					Currency:  "XTR",
					Status:    "succeeded",
				},
			},
			wantOutcome: models.EarningSkippedExternal,
		},
		{
			name: "покупатель без реферера",
			mock: mockParam{
				payment: &storage.Payment{
					PaymentID: testPaymentID,
					UserID:    testUserID,
					Provider:  "bank",
					Amount:    2990,
					Currency:  "RUB",
					Status:    "succeeded",
				},
				callReferrer: true,
				referrerErr:  storage.ErrNoRecordsFound,
			},
			wantOutcome: models.EarningNoReferrer,
		},
		{
			name: "обычная ставка 10 процентов",
			mock: mockParam{
				payment: &storage.Payment{
					PaymentID: testPaymentID,
					UserID:    testUserID,
					Provider:  "bank",
					Amount:    2990,
					Currency:  "RUB",
					Status:    "succeeded",
				},
				callReferrer: true,
				referrerID:   testReferrerID,
				callProfile:  true,
				profileErr:   storage.ErrNoRecordsFound,
				rate:         0.10,
				callCreate:   true,
				earning: storage.CreateEarning{
					PaymentID:    testPaymentID,
					ReferrerID:   testReferrerID,
					ReferredID:   testUserID,
					Amount:       299,
					Rate:         0.10,
					NativeAmount: 2990,
					Currency:     "RUB",
				},
				created: true,
			},
			wantOutcome: models.EarningCreatedOutcome,
		},
		{
			name: "партнерская ставка 50 процентов",
			mock: mockParam{
				payment: &storage.Payment{
					PaymentID: testPaymentID,
					UserID:    testUserID,
					Provider:  "ton",
					Amount:    100,
					Currency:  "TON",
					Status:    "succeeded",
				},
				callReferrer: true,
				referrerID:   testReferrerID,
				callProfile:  true,
				profile: &storage.ReferrerProfile{
					UserID:    testReferrerID,
					IsPartner: true,
				},
				rate:       0.50,
				callCreate: true,
				earning: storage.CreateEarning{
					PaymentID:    testPaymentID,
					ReferrerID:   testReferrerID,
					ReferredID:   testUserID,
					Amount:       50,
					Rate:         0.50,
					NativeAmount: 100,
					Currency:     "TON",
				},
				created: true,
			},
			wantOutcome: models.EarningCreatedOutcome,
		},
		{
			name: "повторное создание - no-op",
			mock: mockParam{
				payment: &storage.Payment{
					PaymentID: testPaymentID,
					UserID:    testUserID,
					Provider:  "bank",
					Amount:    2990,
					Currency:  "RUB",
					Status:    "succeeded",
				},
				callReferrer: true,
				referrerID:   testReferrerID,
				callProfile:  true,
				profileErr:   storage.ErrNoRecordsFound,
				rate:         0.10,
				callCreate:   true,
				earning: storage.CreateEarning{
					PaymentID:    testPaymentID,
					ReferrerID:   testReferrerID,
					ReferredID:   testUserID,
					Amount:       299,
					Rate:         0.10,
					NativeAmount: 2990,
					Currency:     "RUB",
				},
				created: false,
			},
			wantOutcome: models.EarningAlreadyProcessed,
		},
		{
			name: "платеж не найден",
			mock: mockParam{
				paymentErr: storage.ErrNoRecordsFound,
			},
			wantErr: models.ErrUnknownPayment,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stor := mocks.NewStorage(t)
			verifier := mocks.NewSignatureVerifier(t)
			rates := mocks.NewRateResolver(t)

			srv := NewService(verifier, rates, stor)

			stor.On("PaymentByID", mock.Anything, testPaymentID).
				Return(tt.mock.payment, tt.mock.paymentErr)

			if tt.mock.callReferrer {
				stor.On("ReferrerByReferred", mock.Anything, testUserID).
					Return(tt.mock.referrerID, tt.mock.referrerErr)
			}
			if tt.mock.callProfile {
				stor.On("ReferrerProfile", mock.Anything, testReferrerID).
					Return(tt.mock.profile, tt.mock.profileErr)
			}
			if tt.mock.callCreate {
				rates.On("Rate", mock.Anything).Return(tt.mock.rate)
				stor.On("CreateEarning", mock.Anything, tt.mock.earning).
					Return(tt.mock.created, nil)
			}

			outcome, err := srv.CreatePendingEarning(testContext(t), testPaymentID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
		})
	}
}

// индивидуальная ставка важнее партнерской
func TestService_CreatePendingEarning_CustomRate(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	customRate := 0.25
	profile := &storage.ReferrerProfile{
		UserID:         testReferrerID,
		IsPartner:      true,
		CommissionRate: &customRate,
	}

	stor.On("PaymentByID", mock.Anything, testPaymentID).
		Return(&storage.Payment{
			PaymentID: testPaymentID,
			UserID:    testUserID,
			Provider:  "bank",
			Amount:    1000,
			Currency:  "RUB",
			Status:    "succeeded",
		}, nil)
	stor.On("ReferrerByReferred", mock.Anything, testUserID).
		Return(testReferrerID, nil)
	stor.On("ReferrerProfile", mock.Anything, testReferrerID).
		Return(profile, nil)
	rates.On("Rate", &models.ReferrerProfile{
		UserID:         testReferrerID,
		IsPartner:      true,
		CommissionRate: &customRate,
	}).Return(customRate)
	stor.On("CreateEarning", mock.Anything, storage.CreateEarning{
		PaymentID:    testPaymentID,
		ReferrerID:   testReferrerID,
		ReferredID:   testUserID,
		Amount:       250,
		Rate:         0.25,
		NativeAmount: 1000,
		Currency:     "RUB",
	}).Return(true, nil)

	outcome, err := srv.CreatePendingEarning(testContext(t), testPaymentID)

	require.NoError(t, err)
	assert.Equal(t, models.EarningCreatedOutcome, outcome)
}

func TestService_CreditEarning(t *testing.T) {
	type mockParam struct {
		flipped  bool
		callRead bool
		earning  *storage.Earning
		readErr  error
	}

	tests := []struct {
		name        string
		mock        mockParam
		wantOutcome models.EarningOutcome
		wantErr     error
	}{
		{
			name:        "успешное зачисление",
			mock:        mockParam{flipped: true},
			wantOutcome: models.EarningCreditedOutcome,
		},
		{
			name: "повторное зачисление - no-op",
			mock: mockParam{
				callRead: true,
				earning:  &storage.Earning{EarningID: "earn-1", Status: "credited"},
			},
			wantOutcome: models.EarningAlreadyCredited,
		},
		{
			name: "зачисление после отмены запрещено",
			mock: mockParam{
				callRead: true,
				earning:  &storage.Earning{EarningID: "earn-1", Status: "cancelled"},
			},
			wantErr: models.ErrEarningAlreadyCancelled,
		},
		{
			name: "начисления нет - платеж без реферера",
			mock: mockParam{
				callRead: true,
				readErr:  storage.ErrNoRecordsFound,
			},
			wantOutcome: models.EarningNoEarningOutcome,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stor := mocks.NewStorage(t)
			verifier := mocks.NewSignatureVerifier(t)
			rates := mocks.NewRateResolver(t)

			srv := NewService(verifier, rates, stor)

			stor.On("CreditEarning", mock.Anything, testPaymentID, "order-42").
				Return(tt.mock.flipped, nil)
			if tt.mock.callRead {
				stor.On("EarningByPaymentID", mock.Anything, testPaymentID).
					Return(tt.mock.earning, tt.mock.readErr)
			}

			outcome, err := srv.CreditEarning(testContext(t), testPaymentID, "order-42")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
		})
	}
}

func TestService_CancelEarning(t *testing.T) {
	type mockParam struct {
		flipped  bool
		callRead bool
		earning  *storage.Earning
		readErr  error
	}

	tests := []struct {
		name        string
		mock        mockParam
		wantOutcome models.EarningOutcome
		wantErr     error
	}{
		{
			name:        "успешная отмена",
			mock:        mockParam{flipped: true},
			wantOutcome: models.EarningCancelledOutcome,
		},
		{
			name: "повторная отмена - no-op",
			mock: mockParam{
				callRead: true,
				earning:  &storage.Earning{EarningID: "earn-1", Status: "cancelled"},
			},
			wantOutcome: models.EarningAlreadyCancelled,
		},
		{
			name: "отмена зачисленного - жесткая ошибка",
			mock: mockParam{
				callRead: true,
				earning:  &storage.Earning{EarningID: "earn-1", Status: "credited"},
			},
			wantErr: models.ErrEarningAlreadyCredited,
		},
		{
			name: "начисления нет",
			mock: mockParam{
				callRead: true,
				readErr:  storage.ErrNoRecordsFound,
			},
			wantOutcome: models.EarningNoEarningOutcome,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stor := mocks.NewStorage(t)
			verifier := mocks.NewSignatureVerifier(t)
			rates := mocks.NewRateResolver(t)

			srv := NewService(verifier, rates, stor)

			stor.On("CancelEarning", mock.Anything, testPaymentID, "fraud").
				Return(tt.mock.flipped, nil)
			if tt.mock.callRead {
				stor.On("EarningByPaymentID", mock.Anything, testPaymentID).
					Return(tt.mock.earning, tt.mock.readErr)
			}

			outcome, err := srv.CancelEarning(testContext(t), testPaymentID, "fraud")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
		})
	}
}

func TestService_RequestWithdrawal(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	request := models.WithdrawalRequest{
		Currency:     "RUB",
		Amount:       10000,
		PayoutMethod: models.PayoutCard,
		Destination:  "2200150000000004",
	}

	stor.On("CreateWithdrawal", mock.Anything, mock.MatchedBy(func(w storage.CreateWithdrawal) bool {
		return w.UserID == testUserID &&
			w.Amount == 10000 &&
			w.TaxWithheld == 1300 &&
			w.NetAmount == 8700 &&
			w.MinAmount == 5000 &&
			w.PayoutMethod == "card"
	})).Return(12345.0, nil)

	receipt, err := srv.RequestWithdrawal(testContext(t), testUserID, request)

	require.NoError(t, err)
	assert.NotEmpty(t, receipt.WithdrawalID)
	assert.Equal(t, 8700.0, receipt.NetAmount)
	assert.Equal(t, 1300.0, receipt.TaxWithheld)
}

func TestService_RequestWithdrawal_InsufficientFunds(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	request := models.WithdrawalRequest{
		Currency:     "RUB",
		Amount:       6000,
		PayoutMethod: models.PayoutSBP,
		Destination:  "+79990000000",
	}

	stor.On("CreateWithdrawal", mock.Anything, mock.Anything).
		Return(4999.5, storage.ErrInsufficientFunds)

	receipt, err := srv.RequestWithdrawal(testContext(t), testUserID, request)

	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	fundsErr := &models.InsufficientFundsError{}
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, 4999.5, fundsErr.Available)
	assert.Equal(t, "RUB", fundsErr.Currency)
}

func TestService_RequestWithdrawal_InvalidRequest(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	_, err := srv.RequestWithdrawal(testContext(t), testUserID, models.WithdrawalRequest{
		Currency:     "RUB",
		Amount:       -100,
		PayoutMethod: models.PayoutCard,
		Destination:  "2200150000000004",
	})

	assert.ErrorIs(t, err, models.ErrIncorrectWithdrawal)
	stor.AssertNotCalled(t, "CreateWithdrawal", mock.Anything, mock.Anything)
}

func TestService_AttachReferral(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	t.Run("самоприглашение запрещено", func(t *testing.T) {
		err := srv.AttachReferral(testContext(t), models.Referral{
			ReferredUserID: testUserID,
			ReferrerID:     testUserID,
		})
		assert.ErrorIs(t, err, models.ErrSelfReferral)
	})

	t.Run("первый реферер побеждает", func(t *testing.T) {
		stor.On("CreateReferral", mock.Anything, testUserID, testReferrerID).
			Return(storage.ErrUniqueViolation)

		err := srv.AttachReferral(testContext(t), models.Referral{
			ReferredUserID: testUserID,
			ReferrerID:     testReferrerID,
		})
		assert.ErrorIs(t, err, models.ErrReferralAlreadyExists)
	})
}

func TestService_Refund_UnknownPayment(t *testing.T) {
	t.Parallel()

	stor := mocks.NewStorage(t)
	verifier := mocks.NewSignatureVerifier(t)
	rates := mocks.NewRateResolver(t)

	srv := NewService(verifier, rates, stor)

	stor.On("PaymentByID", mock.Anything, testPaymentID).
		Return(nil, storage.ErrNoRecordsFound)

	_, err := srv.Refund(testContext(t), testPaymentID, "operator request")

	assert.ErrorIs(t, err, models.ErrUnknownPayment)
}
