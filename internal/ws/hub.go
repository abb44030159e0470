// Package ws pushes live-query results to connected UI clients. A
// client sends subscribe messages naming a collection; the hub
// attaches a live-query subscription and forwards every refreshed
// result over the socket until unsubscribe or disconnect.
package ws

import (
	"log"
	"sync"

	"fabrisys-backend/internal/livequery"
	"fabrisys-backend/internal/model"

	"github.com/gofiber/contrib/websocket"
	"gorm.io/gorm"
)

type SubscribeRequest struct {
	Action     string `json:"action"` // subscribe | unsubscribe
	Collection string `json:"collection"`

	WarehouseID     uint   `json:"warehouse_id,omitempty"`
	ItemID          uint   `json:"item_id,omitempty"`
	SupplierID      uint   `json:"supplier_id,omitempty"`
	Status          string `json:"status,omitempty"`
	Category        string `json:"category,omitempty"`
	IncludeInactive bool   `json:"include_inactive,omitempty"`
}

type ResultMessage struct {
	Type       string `json:"type"` // result | error
	Collection string `json:"collection"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu   sync.Mutex
	subs map[string]*livequery.Subscription
}

func (c *client) send(msg ResultMessage) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		c.conn.Close()
	}
}

type Hub struct {
	engine *livequery.Engine

	mu      sync.Mutex
	clients map[*websocket.Conn]*client
}

func NewHub(engine *livequery.Engine) *Hub {
	return &Hub{
		engine:  engine,
		clients: make(map[*websocket.Conn]*client),
	}
}

// HandleConn owns one websocket connection: it reads subscribe /
// unsubscribe messages until the peer goes away, then tears down
// every live query the connection holds.
func (h *Hub) HandleConn(conn *websocket.Conn) {
	c := &client{conn: conn, subs: make(map[string]*livequery.Subscription)}

	h.mu.Lock()
	h.clients[conn] = c
	h.mu.Unlock()
	log.Println("New WS Client Connected")

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()

		c.mu.Lock()
		for _, sub := range c.subs {
			sub.Unsubscribe()
		}
		c.subs = nil
		c.mu.Unlock()
		conn.Close()
	}()

	for {
		var req SubscribeRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		switch req.Action {
		case "subscribe":
			h.subscribe(c, req)
		case "unsubscribe":
			c.unsubscribe(req.Collection)
		}
	}
}

func (h *Hub) subscribe(c *client, req SubscribeRequest) {
	query, tables, ok := queryFor(req)
	if !ok {
		c.send(ResultMessage{Type: "error", Collection: req.Collection, Error: "unknown collection"})
		return
	}

	// Replace an existing subscription for the same collection.
	c.unsubscribe(req.Collection)

	sub := h.engine.Subscribe(query, tables...)
	c.mu.Lock()
	if c.subs == nil { // connection already torn down
		c.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	c.subs[req.Collection] = sub
	c.mu.Unlock()

	go func() {
		for res := range sub.Updates() {
			if res.Err != nil {
				c.send(ResultMessage{Type: "error", Collection: req.Collection, Error: res.Err.Error()})
				continue
			}
			c.send(ResultMessage{Type: "result", Collection: req.Collection, Data: res.Value})
		}
	}()
}

func (c *client) unsubscribe(collection string) {
	c.mu.Lock()
	sub, ok := c.subs[collection]
	if ok {
		delete(c.subs, collection)
	}
	c.mu.Unlock()
	if ok {
		sub.Unsubscribe()
	}
}

// queryFor maps a subscribe request onto a query function and the
// tables it depends on.
func queryFor(req SubscribeRequest) (livequery.QueryFunc, []string, bool) {
	switch req.Collection {
	case "warehouses":
		return func(db *gorm.DB) (any, error) {
			var warehouses []model.Warehouse
			q := db.Order("id")
			if !req.IncludeInactive {
				q = q.Where("is_active = ?", true)
			}
			err := q.Find(&warehouses).Error
			return warehouses, err
		}, []string{"warehouses"}, true

	case "items":
		return func(db *gorm.DB) (any, error) {
			var items []model.Item
			q := db.Order("id")
			if req.WarehouseID != 0 {
				q = q.Where("warehouse_id = ?", req.WarehouseID)
			}
			if req.Category != "" {
				q = q.Where("category = ?", req.Category)
			}
			err := q.Find(&items).Error
			return items, err
		}, []string{"items"}, true

	case "low_stock":
		return func(db *gorm.DB) (any, error) {
			var items []model.Item
			err := db.Where("total_quantity <= min_quantity").Order("id").Find(&items).Error
			return items, err
		}, []string{"items"}, true

	case "variants":
		return func(db *gorm.DB) (any, error) {
			var variants []model.Variant
			q := db.Order("id")
			if req.ItemID != 0 {
				q = q.Where("item_id = ?", req.ItemID)
			}
			if req.WarehouseID != 0 {
				q = q.Where("warehouse_id = ?", req.WarehouseID)
			}
			err := q.Find(&variants).Error
			return variants, err
		}, []string{"variants"}, true

	case "suppliers":
		return func(db *gorm.DB) (any, error) {
			var suppliers []model.Supplier
			q := db.Order("id")
			if req.Status != "" {
				q = q.Where("status = ?", req.Status)
			}
			err := q.Find(&suppliers).Error
			return suppliers, err
		}, []string{"suppliers"}, true

	case "invoices":
		return func(db *gorm.DB) (any, error) {
			var invoices []model.Invoice
			q := db.Preload("Supplier").Order("date DESC, id DESC")
			if req.Status != "" {
				q = q.Where("status = ?", req.Status)
			}
			if req.SupplierID != 0 {
				q = q.Where("supplier_id = ?", req.SupplierID)
			}
			err := q.Find(&invoices).Error
			return invoices, err
		}, []string{"invoices", "suppliers"}, true

	case "users":
		return func(db *gorm.DB) (any, error) {
			var users []model.User
			err := db.Order("id").Find(&users).Error
			return users, err
		}, []string{"users"}, true
	}
	return nil, nil, false
}
