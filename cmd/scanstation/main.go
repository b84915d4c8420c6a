// Estación de recepción por escaneo. Corre junto al lector de códigos de
// barras en la bodega: mantiene un espejo local del catálogo para operar sin
// red, acumula los escaneos de la recepción en curso y los registra contra la
// API central como movimientos de entrada.
//
// La entrada estándar hace de teclado de la estación: cada carácter de una
// línea se trata como una tecla del lector y el salto de línea como Enter.
// Las líneas que empiezan con ':' son comandos del operador.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/almacen-api/internal/infrastructure/barcode"
	"github.com/jhoicas/almacen-api/internal/infrastructure/remote"
	"github.com/jhoicas/almacen-api/internal/offline"
	"github.com/jhoicas/almacen-api/internal/scanner"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().Str("remote", cfg.Remote.BaseURL).Msg("iniciando estación de recepción")

	monitor := offline.NewMonitor()
	store := offline.NewFileStore(cfg.Offline.Dir, log)
	store.Load()

	client := remote.NewClient(cfg.Remote, monitor)
	refresher := offline.NewRefresher(client, store, monitor, log)
	lookup := barcode.NewOpenFoodFactsClient(cfg.Lookup)

	ctx := context.Background()
	result, err := refresher.Refresh(ctx)
	if err != nil {
		// Sin red y sin caché la estación arranca vacía; el operador puede
		// reintentar con :sync cuando vuelva la conexión
		log.Warn().Err(err).Msg("sin datos iniciales")
		result = &offline.Result{}
	}
	printStatus(result)

	session := scanner.NewSession(result.Products, lookup, log)

	buffer := scanner.NewBuffer(cfg.Scanner.InactivityWindow, func(code string) {
		lookupCtx, cancel := context.WithTimeout(context.Background(), cfg.Lookup.Timeout)
		defer cancel()
		out := session.Scan(lookupCtx, code)
		switch {
		case out.Matched:
			fmt.Printf("  + %s (%s): %d pendiente(s)\n",
				out.Item.Product.Name, out.Item.Product.InventoryNumber, out.Item.Quantity)
		case out.Lookup != nil:
			fmt.Printf("  ? código %s no está en el catálogo. Ficha externa: %s %s\n",
				code, out.Lookup.Brand, out.Lookup.Name)
		default:
			fmt.Printf("  ? código %s no está en el catálogo\n", code)
		}
	})
	buffer.Arm()

	// Resync periódico del espejo local; el catálogo de la sesión se actualiza
	// sin tocar lo ya acumulado
	var scheduler *cron.Cron
	if cfg.Sync.CronSpec != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Sync.CronSpec, func() {
			syncCtx, cancel := context.WithTimeout(context.Background(), 2*cfg.Remote.Timeout)
			defer cancel()
			res, err := refresher.Refresh(syncCtx)
			if err != nil {
				log.Warn().Err(err).Msg("resync periódico falló")
				return
			}
			session.SetProducts(res.Products)
			log.Info().Str("source", res.Source).Int("products", len(res.Products)).Msg("resync completado")
		})
		if err != nil {
			log.Fatal().Err(err).Str("spec", cfg.Sync.CronSpec).Msg("expresión cron inválida")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	fmt.Println("Estación lista. Escanee códigos o escriba :help para ver los comandos.")

	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := in.Text()
		if strings.HasPrefix(line, ":") {
			if quit := runCommand(ctx, line, session, buffer, refresher, client, cfg); quit {
				break
			}
			continue
		}
		// Cada carácter es una tecla del lector; la línea completa termina en Enter
		for _, r := range line {
			buffer.Key(string(r))
		}
		buffer.Key("Enter")
	}

	log.Info().Msg("estación detenida")
}

// runCommand ejecuta un comando del operador. Devuelve true si hay que salir.
func runCommand(
	ctx context.Context,
	line string,
	session *scanner.Session,
	buffer *scanner.Buffer,
	refresher *offline.Refresher,
	client *remote.APIClient,
	cfg *config.Config,
) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":help":
		fmt.Println("  :sync            refrescar catálogo desde la central")
		fmt.Println("  :items           ver lo acumulado en la recepción")
		fmt.Println("  :qty <num> <n>   corregir la cantidad de un producto")
		fmt.Println("  :submit <quien>  registrar la recepción como entradas")
		fmt.Println("  :arm / :disarm   activar o pausar el lector")
		fmt.Println("  :quit            salir")

	case ":sync":
		res, err := refresher.Refresh(ctx)
		if err != nil {
			fmt.Println("  sin conexión y sin datos en caché")
			return false
		}
		session.SetProducts(res.Products)
		printStatus(res)

	case ":items":
		items := session.Items()
		if len(items) == 0 {
			fmt.Println("  recepción vacía")
			return false
		}
		for _, it := range items {
			fmt.Printf("  %4d x %s (%s)\n", it.Quantity, it.Product.Name, it.Product.InventoryNumber)
		}

	case ":qty":
		if len(fields) != 3 {
			fmt.Println("  uso: :qty <numero-inventario> <cantidad>")
			return false
		}
		n, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			fmt.Println("  cantidad inválida:", fields[2])
			return false
		}
		session.SetQuantity(fields[1], n)

	case ":submit":
		userName := "estación"
		if len(fields) > 1 {
			userName = strings.Join(fields[1:], " ")
		}
		submit(ctx, session, client, userName, cfg.Remote.Timeout)

	case ":arm":
		buffer.Arm()
		fmt.Println("  lector activo")

	case ":disarm":
		buffer.Disarm()
		fmt.Println("  lector en pausa")

	case ":quit", ":q":
		return true

	default:
		fmt.Println("  comando desconocido:", fields[0])
	}
	return false
}

// submit registra lo acumulado como movimientos de entrada en la central. Cada
// línea fallida se reporta; el resto se confirma igual.
func submit(ctx context.Context, session *scanner.Session, client *remote.APIClient, userName string, timeout time.Duration) {
	items := session.Drain()
	if len(items) == 0 {
		fmt.Println("  recepción vacía, nada que registrar")
		return
	}
	for _, req := range scanner.Requests(items, userName) {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		mov, err := client.CreateMovement(reqCtx, req)
		cancel()
		if err != nil {
			fmt.Printf("  ✗ producto %s: %v\n", req.ProductID, err)
			continue
		}
		fmt.Printf("  ✓ entrada registrada: %s x %s\n", mov.Quantity.String(), mov.ProductName)
	}
}

// printStatus imprime el origen de los datos tras un refresh.
func printStatus(res *offline.Result) {
	if res.Notice != "" {
		fmt.Println("  ⚠ " + res.Notice)
	}
	if res.LastSync > 0 {
		fmt.Printf("  catálogo: %d producto(s), última sincronización %s\n",
			len(res.Products), time.UnixMilli(res.LastSync).Format("2006-01-02 15:04"))
		return
	}
	fmt.Printf("  catálogo: %d producto(s)\n", len(res.Products))
}
