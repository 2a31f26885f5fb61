// Package fakebts is an in-memory BTS server for tests.
//
// A Server answers requests on the server side of a net.Pipe with canned or
// generated responses and records every request it receives. Routes are
// matched in order by substring against the full request document; an
// unmatched request closes the connection, which the client sees as EOF.
package fakebts

import (
	"bufio"
	"net"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/arloliu/go-bts/transport"
)

// Route answers requests containing Match with Reply, or with the result of
// Handle when it is set.
type Route struct {
	Match  string
	Reply  string
	Handle func(req string) string
}

// Server is a fake BTS server.
type Server struct {
	mu        sync.Mutex
	routes    []Route
	requests  []string
	unmatched []string
	wg        sync.WaitGroup
}

// New creates a server with the given routes.
func New(routes ...Route) *Server {
	return &Server{routes: routes}
}

// NewDefault creates a server answering with the captured fixtures.
func NewDefault() *Server {
	return New(DefaultRoutes()...)
}

// Prepend adds routes that take precedence over the existing ones.
func (s *Server) Prepend(routes ...Route) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.routes = append(append([]Route{}, routes...), s.routes...)
}

// Conn returns the client side of a new connection served by s.
func (s *Server) Conn() net.Conn {
	client, server := net.Pipe()

	s.wg.Add(1)
	go s.serve(server)

	return client
}

// Wait blocks until every connection served by s has been closed.
func (s *Server) Wait() {
	s.wg.Wait()
}

// Requests returns every request received, without the sentinel, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqs := make([]string, len(s.requests))
	copy(reqs, s.requests)

	return reqs
}

// Count returns the number of requests received for verb.
func (s *Server) Count(verb string) int {
	n := 0
	for _, req := range s.Requests() {
		if strings.Contains(req, "<cmd>"+verb+"</cmd>") {
			n++
		}
	}

	return n
}

// Last returns the most recent request, or "".
func (s *Server) Last() string {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return ""
	}

	return reqs[len(reqs)-1]
}

// Unmatched returns the requests no route answered.
func (s *Server) Unmatched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqs := make([]string, len(s.unmatched))
	copy(reqs, s.unmatched)

	return reqs
}

func (s *Server) serve(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	r := bufio.NewReader(conn)
	for {
		req, err := readRequest(r)
		if err != nil {
			return
		}

		reply, ok := s.route(req)
		if !ok {
			return
		}

		if _, err := conn.Write([]byte(reply + transport.Sentinel)); err != nil {
			return
		}
	}
}

func (s *Server) route(req string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	for _, rt := range s.routes {
		if !strings.Contains(req, rt.Match) {
			continue
		}
		if rt.Handle != nil {
			return rt.Handle(req), true
		}

		return rt.Reply, true
	}
	s.unmatched = append(s.unmatched, req)

	return "", false
}

func readRequest(r *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		line, err := r.ReadString('\n')
		sb.WriteString(line)
		if err != nil {
			return "", err
		}
		if strings.HasSuffix(sb.String(), transport.Sentinel) {
			return strings.TrimSuffix(sb.String(), transport.Sentinel), nil
		}
	}
}

// IntAttr returns the first integer attribute called name in req, or -1.
func IntAttr(req, name string) int {
	m := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `="(-?\d+)"`).FindStringSubmatch(req)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}

	return n
}

const addr2111 = `ip="127.0.0.1" devtype="27" devid="21" subdevid="1" chlid="1"`

// DefaultRoutes returns routes serving the captured fixtures.
func DefaultRoutes() []Route {
	return []Route{
		{Match: "<cmd>connect</cmd>", Reply: ConnectResponse},
		{Match: "<cmd>getdevinfo</cmd>", Reply: DeviceInfoResponse},
		{Match: `<cmd>getchlstatus</cmd><list count="16">`, Reply: StatusAllResponse},
		{Match: `<cmd>getchlstatus</cmd><list count="1"><status ` + addr2111, Reply: Status2111Response},
		{Match: `<cmd>inquire</cmd><list count="16">`, Reply: InquireAllResponse},
		{Match: `<cmd>inquire</cmd><list count="2"><inquire ` + addr2111, Reply: Inquire2111And2112Response},
		{Match: `<cmd>inquire</cmd><list count="1"><inquire ` + addr2111, Reply: Inquire2111Response},
		{Match: `<cmd>inquire</cmd><list count="1"><inquire ip="127.0.0.1" devtype="27" devid="21" subdevid="1" chlid="2"`, Reply: Inquire2112Response},
		{Match: `<cmd>inquire</cmd><list count="1"><inquire ip="127.0.0.1" devtype="27" devid="21" subdevid="1" chlid="4"`, Reply: Inquire2114Response},
		{Match: `<cmd>inquiredf</cmd><list count="16">`, Reply: InquireDFAllResponse},
		{Match: `<cmd>inquiredf</cmd><list count="1"><inquiredf ` + addr2111, Reply: InquireDF2111Response},
		{Match: `<cmd>start</cmd><list count="1"><start ` + addr2111, Reply: Start2111Response},
		{Match: `<cmd>start</cmd><list count="1"><start ip="127.0.0.1" devtype="27" devid="21" subdevid="1" chlid="4"`, Reply: Start2114FalseResponse},
		{Match: `<cmd>stop</cmd><list count="1"><stop ` + addr2111 + `>true</stop></list>`, Reply: Stop2111Response},
		{Match: `<cmd>stop</cmd><list count="2">`, Reply: Stop2111And2112Response},
		{Match: `<cmd>stop</cmd><list count="1"><stop ip="127.0.0.1" devtype="27" devid="21" subdevid="1" chlid="4">true</stop></list>`, Reply: Stop2114FalseResponse},
		{Match: `<cmd>download</cmd><download devtype="27" devid="21" subdevid="1" chlid="1" auxid="0" testid="0" startpos="219576" count="1000">`, Reply: Download2111Response},
		{Match: `<cmd>download</cmd>`, Reply: DownloadEmptyResponse},
		{Match: `<cmd>downloadlog</cmd>`, Reply: DownloadLog2111Response},
		{Match: `<cmd>downloadStepLayer</cmd>`, Reply: StepLayer2111Response},
		{Match: `<cmd>clearflag</cmd><list count="1"><clearflag ` + addr2111 + `>true</clearflag></list>`, Reply: ClearFlagResponse},
		{Match: `<cmd>light</cmd><list count="1"><light ` + addr2111 + `>true</light></list>`, Reply: LightResponse},
	}
}
