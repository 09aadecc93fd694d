package rpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"LMS-backend/internal/reports"
)

func TestToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"invalid argument", reports.ErrInvalid("TopN must be greater than 0."), codes.InvalidArgument},
		{"not found", reports.ErrNotFound("no such book"), codes.NotFound},
		{"persistence", reports.ErrPersistence("query failed"), codes.Internal},
		{"plain error", errors.New("boom"), codes.Internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, ok := status.FromError(toStatus(tc.err))
			require.True(t, ok)
			assert.Equal(t, tc.want, st.Code())
		})
	}
}

func TestUnaryRecovery(t *testing.T) {
	interceptor := UnaryRecovery()
	info := &grpc.UnaryServerInfo{FullMethod: "/lms.LibraryReports/GetReadingRate"}

	t.Run("passes results through", func(t *testing.T) {
		resp, err := interceptor(context.Background(), nil, info,
			func(ctx context.Context, req any) (any, error) { return "ok", nil })
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})

	t.Run("maps a panic to codes.Internal", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil, info,
			func(ctx context.Context, req any) (any, error) { panic("boom") })
		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, codes.Internal, st.Code())
	})
}

func TestServiceDesc(t *testing.T) {
	assert.Equal(t, "lms.LibraryReports", serviceDesc.ServiceName)
	require.Len(t, serviceDesc.Methods, 6)
	names := make([]string, 0, len(serviceDesc.Methods))
	for _, m := range serviceDesc.Methods {
		names = append(names, m.MethodName)
	}
	assert.ElementsMatch(t, []string{
		"GetMostBorrowedBooks", "GetBookAvailability", "GetReadingRate",
		"GetTopBorrowers", "GetUserBorrowHistory", "GetRelatedBooks",
	}, names)
}
