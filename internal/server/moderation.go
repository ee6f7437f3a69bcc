package server

import (
	"context"
	"errors"
	"net/http"

	"guardian-beam/internal/auth"
	"guardian-beam/internal/domain"
	"guardian-beam/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const (
	ModerationServicePath = "/beam.v1.ModerationService/"

	UpdatePresenceProcedure = "/beam.v1.ModerationService/UpdatePresence"
	FileReportProcedure     = "/beam.v1.ModerationService/FileReport"
	ListReportsProcedure    = "/beam.v1.ModerationService/ListReports"
	AttachLabelProcedure    = "/beam.v1.ModerationService/AttachLabel"
)

type ModerationServer struct {
	players *service.PlayerRegistry
	tickets *service.TicketStore
	query   *service.QueryEngine
	logger  zerolog.Logger
}

func NewModerationServer(players *service.PlayerRegistry, tickets *service.TicketStore, query *service.QueryEngine, logger zerolog.Logger) *ModerationServer {
	return &ModerationServer{players: players, tickets: tickets, query: query, logger: logger}
}

// NewHandler mounts the four unary procedures behind ModerationServicePath.
// Requests and responses travel as application/json.
func NewHandler(s *ModerationServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(UpdatePresenceProcedure, connect.NewUnaryHandler(UpdatePresenceProcedure, s.UpdatePresence, opts...))
	mux.Handle(FileReportProcedure, connect.NewUnaryHandler(FileReportProcedure, s.FileReport, opts...))
	mux.Handle(ListReportsProcedure, connect.NewUnaryHandler(ListReportsProcedure, s.ListReports, opts...))
	mux.Handle(AttachLabelProcedure, connect.NewUnaryHandler(AttachLabelProcedure, s.AttachLabel, opts...))
	return ModerationServicePath, mux
}

func (s *ModerationServer) UpdatePresence(ctx context.Context, req *connect.Request[UpdatePresenceRequest]) (*connect.Response[UpdatePresenceResponse], error) {
	playerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	player, err := s.players.UpsertPresence(ctx, service.PresenceCommand{
		PlayerID:     playerID,
		Active:       req.Msg.Active,
		ActiveServer: req.Msg.ActiveServer,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&UpdatePresenceResponse{Player: toPlayer(player)}), nil
}

func (s *ModerationServer) FileReport(ctx context.Context, req *connect.Request[FileReportRequest]) (*connect.Response[FileReportResponse], error) {
	issuerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.tickets.FileReport(ctx, service.FileReportCommand{
		TargetID:     req.Msg.TargetID,
		IssuerID:     issuerID,
		Type:         req.Msg.Type,
		Priority:     req.Msg.Priority,
		TargetServer: req.Msg.TargetServer,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&FileReportResponse{
		TicketID: result.Ticket.ID,
		Created:  result.Created,
		Ticket:   toTicket(result.Ticket),
	}), nil
}

func (s *ModerationServer) ListReports(ctx context.Context, req *connect.Request[ListReportsRequest]) (*connect.Response[ListReportsResponse], error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}

	tickets, err := s.query.ListTickets(ctx, service.ListTicketsQuery{
		TargetID:  req.Msg.TargetID,
		Type:      req.Msg.Type,
		StartDate: req.Msg.StartDate,
		EndDate:   req.Msg.EndDate,
		Offset:    req.Msg.Offset,
		Limit:     req.Msg.Limit,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &ListReportsResponse{Tickets: make([]Ticket, len(tickets))}
	for i := range tickets {
		resp.Tickets[i] = toTicket(&tickets[i])
	}
	return connect.NewResponse(resp), nil
}

func (s *ModerationServer) AttachLabel(ctx context.Context, req *connect.Request[AttachLabelRequest]) (*connect.Response[AttachLabelResponse], error) {
	moderatorID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	attached, err := s.tickets.AttachLabel(ctx, service.AttachLabelCommand{
		TicketID: req.Msg.TicketID,
		TagID:    req.Msg.TagID,
		Name:     req.Msg.Name,
		Priority: req.Msg.Priority,
		Reason:   req.Msg.Reason,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Debug().
		Str("moderator_id", moderatorID).
		Int64("ticket_id", req.Msg.TicketID).
		Str("attachment_id", attached.ID).
		Msg("label attached via api")
	return connect.NewResponse(&AttachLabelResponse{AttachmentID: attached.ID}), nil
}

func caller(ctx context.Context) (string, error) {
	id, ok := auth.PlayerID(ctx)
	if !ok {
		return "", connect.NewError(connect.CodeUnauthenticated, errors.New("no verified caller"))
	}
	return id, nil
}

func toConnectError(err error) error {
	var code connect.Code
	switch domain.KindOf(err) {
	case domain.KindValidation:
		code = connect.CodeInvalidArgument
	case domain.KindNotFound:
		code = connect.CodeNotFound
	case domain.KindStorage:
		code = connect.CodeUnavailable
	case domain.KindUnauthenticated:
		code = connect.CodeUnauthenticated
	default:
		code = connect.CodeInternal
	}
	return connect.NewError(code, err)
}
