// Package rpc exposes the six report queries as the lms.LibraryReports gRPC
// service. The service descriptor is maintained by hand over the JSON codec
// in platform/grpcjson, so no generated code is carried.
package rpc

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"LMS-backend/internal/reports"
)

const serviceName = "lms.LibraryReports"

// LibraryReportsServer is the server contract of the lms.LibraryReports service.
type LibraryReportsServer interface {
	GetMostBorrowedBooks(ctx context.Context, req *MostBorrowedBooksRequest) (*MostBorrowedBooksResponse, error)
	GetBookAvailability(ctx context.Context, req *BookAvailabilityRequest) (*BookAvailabilityResponse, error)
	GetReadingRate(ctx context.Context, req *ReadingRateRequest) (*ReadingRateResponse, error)
	GetTopBorrowers(ctx context.Context, req *TopBorrowersRequest) (*TopBorrowersResponse, error)
	GetUserBorrowHistory(ctx context.Context, req *UserBorrowHistoryRequest) (*UserBorrowHistoryResponse, error)
	GetRelatedBooks(ctx context.Context, req *RelatedBooksRequest) (*RelatedBooksResponse, error)
}

// Register attaches the service to a grpc.Server.
func Register(s grpc.ServiceRegistrar, srv LibraryReportsServer) {
	s.RegisterService(&serviceDesc, srv)
}

// Server adapts the report service to the RPC contract.
type Server struct {
	svc *reports.Service
}

func NewServer(svc *reports.Service) *Server { return &Server{svc: svc} }

func (s *Server) GetMostBorrowedBooks(ctx context.Context, req *MostBorrowedBooksRequest) (*MostBorrowedBooksResponse, error) {
	result, err := s.svc.MostLendingBooks(ctx, reports.MostLendingBooksQuery{TopN: int(req.TopN)})
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &MostBorrowedBooksResponse{Books: make([]MostBorrowedBook, 0, len(result))}
	for _, b := range result {
		resp.Books = append(resp.Books, MostBorrowedBook{Title: b.Title, BorrowCount: int32(b.Count)})
	}
	return resp, nil
}

func (s *Server) GetBookAvailability(ctx context.Context, req *BookAvailabilityRequest) (*BookAvailabilityResponse, error) {
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid book id")
	}
	result, err := s.svc.BookAvailability(ctx, reports.BookAvailabilityQuery{BookID: bookID})
	if err != nil {
		return nil, toStatus(err)
	}
	if result == nil {
		return &BookAvailabilityResponse{}, nil
	}
	return &BookAvailabilityResponse{
		Code:            result.Code,
		TotalCopies:     int32(result.TotalCopies),
		AvailableCopies: int32(result.AvailableCopiesCount),
	}, nil
}

func (s *Server) GetReadingRate(ctx context.Context, req *ReadingRateRequest) (*ReadingRateResponse, error) {
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid book id")
	}
	result, err := s.svc.BookReadingRate(ctx, reports.BookReadingRateQuery{BookID: bookID})
	if err != nil {
		return nil, toStatus(err)
	}
	if result == nil {
		return &ReadingRateResponse{}, nil
	}
	return &ReadingRateResponse{Rate: result.Average}, nil
}

// GetTopBorrowers leaves the date window zeroed so the handler applies its
// 30-day trailing default.
func (s *Server) GetTopBorrowers(ctx context.Context, req *TopBorrowersRequest) (*TopBorrowersResponse, error) {
	result, err := s.svc.TopLendingUsers(ctx, reports.TopLendingUsersQuery{TopUserCount: int(req.TopN)})
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &TopBorrowersResponse{Borrowers: make([]TopBorrower, 0, len(result))}
	for _, u := range result {
		resp.Borrowers = append(resp.Borrowers, TopBorrower{FullName: u.Name, BorrowCount: int32(u.LendingBooksCount)})
	}
	return resp, nil
}

func (s *Server) GetUserBorrowHistory(ctx context.Context, req *UserBorrowHistoryRequest) (*UserBorrowHistoryResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid user id")
	}
	result, err := s.svc.UserLendingBooks(ctx, reports.UserLendingBooksQuery{UserID: userID})
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &UserBorrowHistoryResponse{History: make([]UserBorrowHistory, 0, len(result))}
	for _, h := range result {
		item := UserBorrowHistory{
			BookTitle:  h.Title,
			BorrowedAt: h.LendingDate.Format(time.RFC3339),
		}
		if h.SubmittedDate != nil {
			val := h.SubmittedDate.Format(time.RFC3339)
			item.ReturnedAt = &val
		}
		resp.History = append(resp.History, item)
	}
	return resp, nil
}

func (s *Server) GetRelatedBooks(ctx context.Context, req *RelatedBooksRequest) (*RelatedBooksResponse, error) {
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid book id")
	}
	result, err := s.svc.LendingRelatedBooks(ctx, reports.LendingRelatedBooksQuery{BookID: bookID})
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &RelatedBooksResponse{Books: make([]RelatedBook, 0, len(result))}
	for _, b := range result {
		resp.Books = append(resp.Books, RelatedBook{ID: b.BookID.String(), Title: b.Title, Author: b.Author})
	}
	return resp, nil
}

// UnaryRecovery logs every call, recovers panics, and maps them to a generic
// internal status so a failing report never tears down the server.
func UnaryRecovery() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[ERROR] unhandled exception in %s: %v", info.FullMethod, r)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		start := time.Now()
		resp, err = handler(ctx, req)
		if err != nil {
			log.Printf("[ERROR] %s failed after %s: %v", info.FullMethod, time.Since(start), err)
		}
		return resp, err
	}
}

func toStatus(err error) error {
	var api *reports.APIError
	if errors.As(err, &api) {
		switch api.Code {
		case reports.CodeInvalidArgument:
			return status.Error(codes.InvalidArgument, api.Message)
		case reports.CodeNotFound:
			return status.Error(codes.NotFound, api.Message)
		default:
			return status.Error(codes.Internal, api.Message)
		}
	}
	return status.Error(codes.Internal, err.Error())
}

// ---------- service descriptor ----------

func handlerFor[Req any, Resp any](call func(LibraryReportsServer, context.Context, *Req) (*Resp, error), fullMethod string) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LibraryReportsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LibraryReportsServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LibraryReportsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetMostBorrowedBooks",
			Handler: handlerFor(LibraryReportsServer.GetMostBorrowedBooks,
				"/"+serviceName+"/GetMostBorrowedBooks"),
		},
		{
			MethodName: "GetBookAvailability",
			Handler: handlerFor(LibraryReportsServer.GetBookAvailability,
				"/"+serviceName+"/GetBookAvailability"),
		},
		{
			MethodName: "GetReadingRate",
			Handler: handlerFor(LibraryReportsServer.GetReadingRate,
				"/"+serviceName+"/GetReadingRate"),
		},
		{
			MethodName: "GetTopBorrowers",
			Handler: handlerFor(LibraryReportsServer.GetTopBorrowers,
				"/"+serviceName+"/GetTopBorrowers"),
		},
		{
			MethodName: "GetUserBorrowHistory",
			Handler: handlerFor(LibraryReportsServer.GetUserBorrowHistory,
				"/"+serviceName+"/GetUserBorrowHistory"),
		},
		{
			MethodName: "GetRelatedBooks",
			Handler: handlerFor(LibraryReportsServer.GetRelatedBooks,
				"/"+serviceName+"/GetRelatedBooks"),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "library_reports",
}
