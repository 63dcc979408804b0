package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ChimaRyder/huggle-buyer-app/internal/auth"
	"github.com/ChimaRyder/huggle-buyer-app/internal/config"
	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
	"github.com/ChimaRyder/huggle-buyer-app/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.API.Token == "" {
		fmt.Fprintln(os.Stderr, "API_TOKEN is required")
		os.Exit(1)
	}
	if cfg.Buyer.ID == "" {
		fmt.Fprintln(os.Stderr, "BUYER_ID is required")
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	sess := session.New(cfg.API, auth.NewStaticTokenSource(cfg.API.Token), terminalConfirm{}, logger)

	ctx := context.Background()
	if err := sess.Start(ctx, cfg.Buyer.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	switch os.Args[1] {
	case "cart":
		err = showCart(ctx, sess)
	case "add":
		err = addToCart(ctx, sess, os.Args[2:])
	case "remove":
		err = removeFromCart(ctx, sess, os.Args[2:])
	case "checkout":
		err = checkoutCart(ctx, sess, os.Args[2:])
	case "orders":
		err = showOrders(ctx, sess)
	case "cancel":
		err = cancelOrder(ctx, sess, os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: buyerctl <command>")
	fmt.Println("Commands:")
	fmt.Println("  cart                      show the cart")
	fmt.Println("  add <productId> <amount>  add a product to the cart")
	fmt.Println("  remove <productId>        remove a cart line")
	fmt.Println("  checkout <storeId>        order the selected cart lines")
	fmt.Println("  orders                    list orders")
	fmt.Println("  cancel <orderId>          cancel an order")
}

func showCart(ctx context.Context, sess *session.Session) error {
	if err := sess.Cart.Load(ctx); err != nil {
		return err
	}
	lines := sess.Cart.Lines()
	if len(lines) == 0 {
		fmt.Println("Cart is empty.")
		return nil
	}
	for _, line := range lines {
		fmt.Printf("  %s  x%d  %s\n", line.DisplayName(), line.Amount, domain.FormatPrice(line.Subtotal()))
	}
	fmt.Printf("Total: %s\n", domain.FormatPrice(sess.Cart.TotalPrice()))
	return nil
}

func addToCart(ctx context.Context, sess *session.Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: buyerctl add <productId> <amount>")
	}
	amount, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("amount must be an integer")
	}
	if err := sess.Cart.AddItem(ctx, args[0], amount); err != nil {
		return err
	}
	fmt.Println("Added to cart.")
	return nil
}

func removeFromCart(ctx context.Context, sess *session.Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: buyerctl remove <productId>")
	}
	if err := sess.Cart.Load(ctx); err != nil {
		return err
	}
	return sess.Cart.RemoveItem(ctx, args[0])
}

func checkoutCart(ctx context.Context, sess *session.Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: buyerctl checkout <storeId>")
	}
	if err := sess.Cart.Load(ctx); err != nil {
		return err
	}
	total := sess.Cart.TotalPrice()
	if err := sess.CheckoutSelected(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Orders placed. Total: %s\n", domain.FormatPrice(total))
	return nil
}

func showOrders(ctx context.Context, sess *session.Session) error {
	if err := sess.Orders.Load(ctx); err != nil {
		return err
	}
	views := sess.Orders.Orders()
	if len(views) == 0 {
		fmt.Println("No orders.")
		return nil
	}
	for _, v := range views {
		fmt.Printf("  %s  %s  %s  %s  [%s]\n",
			v.ID, v.ProductName, v.StoreName, domain.FormatPrice(v.TotalPrice), v.Bucket())
	}
	return nil
}

func cancelOrder(ctx context.Context, sess *session.Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: buyerctl cancel <orderId>")
	}
	if err := sess.Orders.Load(ctx); err != nil {
		return err
	}
	if err := sess.Orders.Cancel(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Order cancelled.")
	return nil
}

// terminalConfirm asks the yes/no question on stdin.
type terminalConfirm struct{}

func (terminalConfirm) Confirm(ctx context.Context, title, message string) (bool, error) {
	fmt.Printf("%s: %s [y/N] ", title, message)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
