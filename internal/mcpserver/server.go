package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	idnum "github.com/dossier-cli/dossier/internal/idcard"
	"github.com/dossier-cli/dossier/internal/output"
	"github.com/dossier-cli/dossier/internal/pap"
	"github.com/dossier-cli/dossier/internal/services"
	"github.com/dossier-cli/dossier/internal/services/idcard"
	"github.com/dossier-cli/dossier/internal/version"
)

// ServerName is the name announced to MCP clients.
const ServerName = "dossier"

// Tool names.
const (
	ToolPhoneNumber  = "query_phone_number"
	ToolPhoneAddress = "query_phone_address"
	ToolIDCard       = "query_id_card"
	ToolIPLocation   = "query_ip_location"
	ToolResolve      = "resolve_domain"
)

const (
	apiSaorao  = "saorao"
	apiAddress = "address"
)

// Services are the backends behind the tools. A nil field disables its tools.
type Services struct {
	Phone        services.Service
	PhoneAddress services.Service
	IDCard       *idcard.Service
	IPGeo        services.Service
	Resolve      services.Service
}

// Server dispatches MCP tool calls to the lookup services.
type Server struct {
	mcp    *server.MCPServer
	svcs   Services
	limit  pap.Level
	logger *slog.Logger
	now    func() time.Time
	tools  []string
}

// New builds a server whose tools are limited to services allowed by limit.
func New(svcs Services, limit pap.Level, logger *slog.Logger) *Server {
	s := &Server{
		mcp:    server.NewMCPServer(ServerName, version.Version, server.WithToolCapabilities(false)),
		svcs:   svcs,
		limit:  limit,
		logger: logger,
		now:    time.Now,
	}
	s.register()
	return s
}

// Tools returns the names of the registered tools in registration order.
func (s *Server) Tools() []string { return s.tools }

// MCP returns the underlying protocol server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// ServeStdio serves requests on stdin and stdout until stdin closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("mcp server listening on stdio", "tools", strings.Join(s.tools, ","))
	return server.ServeStdio(s.mcp)
}

func (s *Server) allowed(svc services.Service) bool {
	if svc == nil {
		return false
	}
	if !pap.Allows(s.limit, svc.PAP()) {
		s.logger.Debug("tool not registered above PAP limit", "service", svc.Name(), "pap", svc.PAP(), "limit", s.limit)
		return false
	}
	return true
}

func (s *Server) add(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.mcp.AddTool(tool, handler)
	s.tools = append(s.tools, tool.Name)
}

func (s *Server) register() {
	// query_phone_number needs at least one of its two backends.
	if s.allowed(s.svcs.Phone) || s.allowed(s.svcs.PhoneAddress) {
		s.add(mcp.NewTool(ToolPhoneNumber,
			mcp.WithDescription("查询中国手机号码的骚扰电话标记或归属地信息"),
			mcp.WithString("phoneNumber", mcp.Required(), mcp.Description("要查询的11位中国手机号码")),
			mcp.WithString("apiType",
				mcp.Description("API类型：saorao(骚扰电话查询) 或 address(归属地查询)，默认为saorao"),
				mcp.Enum(apiSaorao, apiAddress),
				mcp.DefaultString(apiSaorao)),
		), s.handlePhoneNumber)
	}
	if s.allowed(s.svcs.PhoneAddress) {
		s.add(mcp.NewTool(ToolPhoneAddress,
			mcp.WithDescription("查询中国手机号码的归属地和运营商信息"),
			mcp.WithString("phoneNumber", mcp.Required(), mcp.Description("要查询的11位中国手机号码")),
		), s.handlePhoneAddress)
	}
	if s.svcs.IDCard != nil && s.allowed(s.svcs.IDCard) {
		s.add(mcp.NewTool(ToolIDCard,
			mcp.WithDescription("离线校验18位居民身份证号码并解析出生日期、性别、地区和年龄"),
			mcp.WithString("idNumber", mcp.Required(), mcp.Description("18位居民身份证号码")),
			mcp.WithString("referenceDate", mcp.Description("计算年龄的参考日期 YYYY-MM-DD，默认为今天")),
		), s.handleIDCard)
	}
	if s.allowed(s.svcs.IPGeo) {
		s.add(mcp.NewTool(ToolIPLocation,
			mcp.WithDescription("查询公网IP地址的地理位置"),
			mcp.WithString("ip", mcp.Required(), mcp.Description("IPv4或IPv6地址")),
		), s.handleIPLocation)
	}
	if s.allowed(s.svcs.Resolve) {
		s.add(mcp.NewTool(ToolResolve,
			mcp.WithDescription("解析域名的CNAME链和A/AAAA记录"),
			mcp.WithString("domain", mcp.Required(), mcp.Description("要解析的域名")),
		), s.handleResolveDomain)
	}
}

func (s *Server) handlePhoneNumber(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireString("phoneNumber")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	switch api := req.GetString("apiType", apiSaorao); api {
	case apiAddress:
		return s.run(ctx, ToolPhoneNumber, "手机号码归属地", s.svcs.PhoneAddress, number), nil
	case apiSaorao:
		return s.run(ctx, ToolPhoneNumber, "骚扰电话", s.svcs.Phone, number), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("apiType must be %q or %q, got %q", apiSaorao, apiAddress, api)), nil
	}
}

func (s *Server) handlePhoneAddress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number, err := req.RequireString("phoneNumber")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.run(ctx, ToolPhoneAddress, "手机号码归属地", s.svcs.PhoneAddress, number), nil
}

func (s *Server) handleIDCard(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("idNumber")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ref := s.now()
	if day := req.GetString("referenceDate", ""); day != "" {
		ref, err = time.ParseInLocation(idnum.DateLayout, day, time.Local)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("referenceDate must be YYYY-MM-DD: %q", day)), nil
		}
	}

	s.logger.Debug("tool call", "tool", ToolIDCard)
	result, err := s.svcs.IDCard.Lookup(id, ref)
	if err != nil {
		return s.failure(ToolIDCard, err), nil
	}
	return s.success("身份证", result), nil
}

func (s *Server) handleIPLocation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ip, err := req.RequireString("ip")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.run(ctx, ToolIPLocation, "IP地理位置", s.svcs.IPGeo, ip), nil
}

func (s *Server) handleResolveDomain(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain, err := req.RequireString("domain")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.run(ctx, ToolResolve, "域名解析", s.svcs.Resolve, domain), nil
}

// run executes svc for input and renders the outcome as a tool result.
func (s *Server) run(ctx context.Context, tool, heading string, svc services.Service, input string) *mcp.CallToolResult {
	if svc == nil || !pap.Allows(s.limit, svc.PAP()) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: backend not available under PAP limit %s", tool, s.limit))
	}
	s.logger.Debug("tool call", "tool", tool, "service", svc.Name())
	result, err := svc.Run(ctx, strings.TrimSpace(input))
	if err != nil {
		return s.failure(tool, err)
	}
	return s.success(heading, result)
}

func (s *Server) success(heading string, result any) *mcp.CallToolResult {
	text, err := render(heading, result)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(text)
}

func (s *Server) failure(tool string, err error) *mcp.CallToolResult {
	s.logger.Warn("tool call failed", "tool", tool, "error", err)
	return mcp.NewToolResultError("查询失败: " + err.Error())
}

// render formats a result as a heading line, a blank line, and indented JSON.
func render(heading string, result any) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(heading)
	buf.WriteString("查询结果：\n\n")
	if err := output.WriteJSON(&buf, result); err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
