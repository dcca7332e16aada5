package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
	"github.com/oqdoku94/web-larek-frontend/internal/events"
	"github.com/oqdoku94/web-larek-frontend/internal/flow"
	"github.com/oqdoku94/web-larek-frontend/internal/shopapi"
	"github.com/oqdoku94/web-larek-frontend/internal/store"
	"github.com/oqdoku94/web-larek-frontend/internal/view"
)

type Config struct {
	ShopAPIURL     string
	RedisAddr      string
	RequestTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		ShopAPIURL:     getEnv("SHOP_API_URL", "http://localhost:8081/api/v1"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RequestTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func buildCache(cfg *Config) shopapi.ProductCache {
	if cfg.RedisAddr == "" {
		return shopapi.NewMemoryCache()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, falling back to in-memory cache: %v", err)
		return shopapi.NewMemoryCache()
	}
	return shopapi.NewRedisCache(client)
}

func main() {
	cfg := loadConfig()

	api := shopapi.NewCachedClient(
		shopapi.NewClient(cfg.ShopAPIURL, cfg.RequestTimeout),
		buildCache(cfg),
	)

	bus := events.NewBus()
	st := store.New(bus)
	page := view.NewConsolePage(os.Stdout)
	modal := view.NewConsoleModal(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller := flow.NewController(bus, st, api, page, modal)
	unsubscribe := controller.Run(ctx)
	defer unsubscribe()

	products, err := api.ListProducts(ctx)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	st.SetCatalog(products)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	printHelp()
	for {
		fmt.Print("> ")
		select {
		case <-quit:
			log.Println("shutting down")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !dispatch(bus, st, line) {
				return
			}
		}
	}
}

// dispatch translates one console command into a bus event. Returns
// false when the user asked to quit.
func dispatch(bus *events.Bus, st *store.Store, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch fields[0] {
	case "show":
		if len(fields) < 2 {
			fmt.Println("usage: show <product-id>")
			return true
		}
		bus.Emit(events.ProductSelected, fields[1])
	case "toggle":
		if len(fields) < 2 {
			fmt.Println("usage: toggle <product-id>")
			return true
		}
		bus.Emit(events.BasketToggle, fields[1])
	case "basket":
		bus.Emit(events.BasketOpen, nil)
	case "remove":
		if len(fields) < 2 {
			fmt.Println("usage: remove <product-id>")
			return true
		}
		bus.Emit(events.BasketItemRemoved, fields[1])
	case "checkout":
		bus.Emit(events.BasketSubmit, nil)
	case "order":
		if len(fields) < 3 {
			fmt.Println("usage: order <payment> <address...>")
			return true
		}
		bus.Emit(events.OrderSubmit, domain.OrderDraft{
			Payment: domain.Payment(fields[1]),
			Address: strings.Join(fields[2:], " "),
		})
	case "contacts":
		if len(fields) < 3 {
			fmt.Println("usage: contacts <email> <phone>")
			return true
		}
		bus.Emit(events.ContactsSubmit, domain.ContactsDraft{
			Email: fields[1],
			Phone: fields[2],
		})
	case "close":
		bus.Emit(events.ModalClose, nil)
	case "list":
		st.SetCatalog(st.Catalog())
	case "help":
		printHelp()
	case "quit", "exit":
		return false
	default:
		fmt.Printf("unknown command: %s (try help)\n", fields[0])
	}
	return true
}

func printHelp() {
	fmt.Println(`commands:
  list                      show the catalog
  show <product-id>         open a product preview
  toggle <product-id>       add or remove the previewed product
  basket                    open the basket
  remove <product-id>       remove an item from the open basket
  checkout                  start checkout from the open basket
  order <payment> <addr>    submit delivery details (payment: card|cash)
  contacts <email> <phone>  submit contacts and place the order
  close                     close the current modal
  quit                      exit`)
}
