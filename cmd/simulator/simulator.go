package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// SimulatorConfig holds the simulator configuration
type SimulatorConfig struct {
	ServerURL     string
	WebSocketURL  string
	Email         string
	Password      string
	SiteID        string
	ModuleIDs     []string
	RateID        string
	VehicleTypeID string
	VehicleCount  int
	Interval      time.Duration
}

// Simulator drives entry and exit traffic against the gate API, the way a
// busy afternoon would.
type Simulator struct {
	config *SimulatorConfig
	client *http.Client
	log    *zap.Logger

	mu     sync.Mutex
	token  string
	inside map[string]bool // plate -> parked
	wsConn *websocket.Conn
	stopCh chan struct{}
}

func NewSimulator(config *SimulatorConfig, log *zap.Logger) *Simulator {
	return &Simulator{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
		inside: make(map[string]bool),
		stopCh: make(chan struct{}),
	}
}

// Login authenticates the simulated operator and keeps the access token for
// subsequent requests.
func (s *Simulator) Login() error {
	payload := map[string]string{
		"email":    s.config.Email,
		"password": s.config.Password,
	}

	var result struct {
		Data struct {
			Tokens struct {
				AccessToken string `json:"accessToken"`
			} `json:"tokens"`
		} `json:"data"`
	}

	if err := s.post("/api/v1/auth/login", payload, &result); err != nil {
		return err
	}
	if result.Data.Tokens.AccessToken == "" {
		return fmt.Errorf("login response carried no access token")
	}

	s.mu.Lock()
	s.token = result.Data.Tokens.AccessToken
	s.mu.Unlock()

	s.log.Info("Logged in", zap.String("email", s.config.Email))
	return nil
}

// WatchOccupancy subscribes to the site occupancy WebSocket and logs every
// update pushed by the server.
func (s *Simulator) WatchOccupancy() error {
	url := s.config.WebSocketURL
	if url == "" {
		url = strings.Replace(s.config.ServerURL, "http", "ws", 1) + "/ws/ocupacion"
	}
	url += "?sede=" + s.config.SiteID

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}

	s.mu.Lock()
	s.wsConn = conn
	s.mu.Unlock()

	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				select {
				case <-s.stopCh:
				default:
					s.log.Warn("Occupancy stream closed", zap.Error(err))
				}
				return
			}
			s.log.Info("Occupancy update", zap.ByteString("event", msg))
		}
	}()

	s.log.Info("Watching occupancy", zap.String("sede", s.config.SiteID))
	return nil
}

// Run generates gate traffic until stopped: each tick a random vehicle either
// enters a free module or leaves.
func (s *Simulator) Run() {
	plates := make([]string, s.config.VehicleCount)
	for i := range plates {
		plates[i] = randomPlate()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			plate := plates[rand.Intn(len(plates))]
			if s.parked(plate) {
				if err := s.Exit(plate); err != nil {
					s.log.Warn("Exit failed", zap.String("placa", plate), zap.Error(err))
				}
				continue
			}
			module := s.config.ModuleIDs[rand.Intn(len(s.config.ModuleIDs))]
			if err := s.Enter(plate, module); err != nil {
				s.log.Warn("Entry failed", zap.String("placa", plate), zap.Error(err))
			}
		}
	}
}

// Enter pushes a vehicle through the entry gate.
func (s *Simulator) Enter(plate, moduleID string) error {
	payload := map[string]interface{}{
		"moduloId":       moduleID,
		"placa":          plate,
		"vehiculoTipoId": s.config.VehicleTypeID,
		"tarifaId":       s.config.RateID,
	}

	var result struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := s.post("/api/v1/parqueo/ingresar", payload, &result); err != nil {
		return err
	}

	switch result.Status {
	case "success", "arrendamiento":
		s.setParked(plate, true)
		s.log.Info("Vehicle entered", zap.String("placa", plate), zap.String("modulo", moduleID))
	default:
		s.log.Info("Entry refused", zap.String("placa", plate), zap.String("motivo", result.Message))
	}
	return nil
}

// Exit quotes the open session and pays it in cash.
func (s *Simulator) Exit(plate string) error {
	var quote struct {
		Status string `json:"status"`
		Data   struct {
			Due json.Number `json:"totalAPagar"`
		} `json:"data"`
	}
	if err := s.get("/api/v1/parqueo/"+plate+"/cotizar", &quote); err != nil {
		return err
	}

	payload := map[string]interface{}{
		"placa":           plate,
		"totalPagado":     quote.Data.Due.String(),
		"metodoPagoId":    "",
		"esArrendamiento": quote.Status != "success",
	}

	var result struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := s.post("/api/v1/parqueo/vehiculo/retirar", payload, &result); err != nil {
		return err
	}

	if result.Status == "success" {
		s.setParked(plate, false)
		s.log.Info("Vehicle exited", zap.String("placa", plate), zap.String("pagado", quote.Data.Due.String()))
	} else {
		s.log.Info("Exit refused", zap.String("placa", plate), zap.String("motivo", result.Message))
	}
	return nil
}

// Stop shuts the simulator down.
func (s *Simulator) Stop() {
	close(s.stopCh)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wsConn != nil {
		s.wsConn.Close()
	}
}

// RunInteractive reads gate commands from stdin.
func (s *Simulator) RunInteractive() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "entrar":
			if len(fields) < 3 {
				fmt.Println("usage: entrar <placa> <modulo>")
				continue
			}
			err = s.Enter(strings.ToUpper(fields[1]), fields[2])
		case "salir":
			if len(fields) < 2 {
				fmt.Println("usage: salir <placa>")
				continue
			}
			err = s.Exit(strings.ToUpper(fields[1]))
		case "cotizar":
			if len(fields) < 2 {
				fmt.Println("usage: cotizar <placa>")
				continue
			}
			err = s.printQuote(strings.ToUpper(fields[1]))
		case "activos":
			err = s.printActive()
		case "quit", "exit":
			s.Stop()
			return
		default:
			fmt.Printf("unknown command: %s\n", fields[0])
			continue
		}

		if err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func (s *Simulator) printQuote(plate string) error {
	var result map[string]interface{}
	if err := s.get("/api/v1/parqueo/"+plate+"/cotizar", &result); err != nil {
		return err
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	return nil
}

func (s *Simulator) printActive() error {
	if s.config.SiteID == "" {
		return fmt.Errorf("no site configured, pass -sede")
	}
	var result map[string]interface{}
	if err := s.get("/api/v1/sede/"+s.config.SiteID+"/parqueos-activos", &result); err != nil {
		return err
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	return nil
}

func (s *Simulator) parked(plate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inside[plate]
}

func (s *Simulator) setParked(plate string, in bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inside[plate] = in
}

func (s *Simulator) post(path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.config.ServerURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return s.do(req, out)
}

func (s *Simulator) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, s.config.ServerURL+path, nil)
	if err != nil {
		return err
	}
	return s.do(req, out)
}

func (s *Simulator) do(req *http.Request, out interface{}) error {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%s: status %d", req.URL.Path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

const plateLetters = "ABCDEFGHJKLMNPRSTUVWXYZ"

func randomPlate() string {
	b := make([]byte, 6)
	for i := 0; i < 3; i++ {
		b[i] = plateLetters[rand.Intn(len(plateLetters))]
	}
	for i := 3; i < 6; i++ {
		b[i] = byte('0' + rand.Intn(10))
	}
	return string(b)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
