package payment

import (
	"errors"
	"testing"

	"github.com/midtrans/midtrans-go"
	"github.com/stretchr/testify/assert"
)

func TestIsSandboxRefundRejection(t *testing.T) {
	sandbox := &midtransGateway{cfg: Config{IsProduction: false}}
	production := &midtransGateway{cfg: Config{IsProduction: true}}

	tests := []struct {
		name    string
		gateway *midtransGateway
		err     *midtrans.Error
		want    bool
	}{
		{
			name:    "sandbox precondition failure",
			gateway: sandbox,
			err:     &midtrans.Error{StatusCode: 412, Message: "Merchant cannot modify the transaction"},
			want:    true,
		},
		{
			name:    "sandbox credential rejection",
			gateway: sandbox,
			err:     &midtrans.Error{StatusCode: 401, Message: "Refund requires live credential"},
			want:    true,
		},
		{
			name:    "sandbox genuine failure still surfaces",
			gateway: sandbox,
			err:     &midtrans.Error{StatusCode: 500, Message: "internal error"},
			want:    false,
		},
		{
			name:    "production never swallows refund errors",
			gateway: production,
			err:     &midtrans.Error{StatusCode: 412, Message: "Merchant cannot modify the transaction"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.gateway.isSandboxRefundRejection(tt.err))
		})
	}
}

func TestGatewayErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &GatewayError{Op: "refund", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "refund")
	assert.Contains(t, err.Error(), "connection refused")
}
