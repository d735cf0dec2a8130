package cli

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"autoshorts/internal/outreach"
	"autoshorts/internal/status"
	"autoshorts/internal/store"
)

var mainOptions = []string{
	"YouTube Shorts Automation",
	"Twitter Accounts",
	"Affiliate Marketing",
	"Outreach",
	"Quit",
}

var youtubeOptions = []string{
	"Generate & Upload Short",
	"Show all Shorts",
	"Setup CRON Job",
	"Remove this account",
	"Back",
}

// RunMenu drives the interactive main loop until the user quits.
func (a *App) RunMenu(ctx context.Context) error {
	a.CleanTempFiles()

	for {
		choice := selectOption("OPTIONS", mainOptions)
		switch choice {
		case 1:
			if err := a.menuYouTube(ctx); err != nil {
				status.Error("%v", err)
			}
		case 2:
			if err := a.menuAccounts(store.ProviderTwitter); err != nil {
				status.Error("%v", err)
			}
		case 3:
			if err := a.menuAffiliateMarketing(); err != nil {
				status.Error("%v", err)
			}
		case 4:
			if err := a.menuOutreach(); err != nil {
				status.Error("%v", err)
			}
		case 5:
			if a.Cfg.Verbose() {
				status.Info("Quitting...")
			}
			return nil
		}
	}
}

// selectOption shows a numbered menu and re-prompts until the input is a
// number within range.
func selectOption(header string, options []string) int {
	for {
		status.Info("============ %s ============", header)
		for i, option := range options {
			status.Info(" %d. %s", i+1, option)
		}
		input := status.Question("Select an option: ")
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(options) {
			status.Error("Invalid input %q. Please enter a number between 1 and %d.", input, len(options))
			continue
		}
		return n
	}
}

func (a *App) menuYouTube(ctx context.Context) error {
	status.Info("Starting YT Shorts Automater...")

	accounts, err := a.Store.Accounts(store.ProviderYouTube)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		status.Warn("No accounts found in cache. Create one now?")
		if !confirm() {
			return nil
		}
		if err := a.addAccount(store.ProviderYouTube); err != nil {
			return err
		}
		accounts, err = a.Store.Accounts(store.ProviderYouTube)
		if err != nil {
			return err
		}
	}

	acct, ok := pickAccount(accounts, store.ProviderYouTube)
	if !ok {
		return nil
	}

	for {
		choice := selectOption("YOUTUBE OPTIONS", youtubeOptions)
		switch choice {
		case 1:
			if err := a.generateShort(ctx, acct); err != nil {
				status.Error("%v", err)
			}
		case 2:
			fresh, found, err := a.Store.FindAccount(store.ProviderYouTube, acct.ID)
			if err != nil {
				return err
			}
			if !found || len(fresh.Videos) == 0 {
				status.Warn("No videos found.")
				continue
			}
			printVideosTable(fresh.Videos)
		case 3:
			if err := a.scheduleCron(ctx, acct.ID); err != nil {
				status.Error("%v", err)
			}
		case 4:
			if err := a.Store.RemoveAccount(store.ProviderYouTube, acct.ID); err != nil {
				return err
			}
			status.Success("Removed account %s.", acct.Nickname)
			return nil
		case 5:
			return nil
		}
	}
}

func (a *App) generateShort(ctx context.Context, acct store.Account) error {
	yt, err := a.buildYouTubeWorkflow(ctx, acct)
	if err != nil {
		return err
	}

	session, err := yt.Run(ctx, acct.ID, false)
	if err != nil {
		return err
	}

	answer := status.Question("Do you want to upload this video to YouTube? (Yes/No): ")
	if strings.EqualFold(answer, "yes") || strings.EqualFold(answer, "y") {
		return yt.Upload(ctx, acct, session)
	}
	return nil
}

// menuAccounts is the generic bookkeeping loop used for providers without a
// full automation flow.
func (a *App) menuAccounts(provider store.Provider) error {
	options := []string{"Show accounts", "Add account", "Remove account", "Back"}
	for {
		choice := selectOption(strings.ToUpper(string(provider))+" ACCOUNTS", options)
		switch choice {
		case 1:
			accounts, err := a.Store.Accounts(provider)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				status.Warn("No accounts found.")
				continue
			}
			printAccountsTable(accounts)
		case 2:
			if err := a.addAccount(provider); err != nil {
				return err
			}
		case 3:
			accounts, err := a.Store.Accounts(provider)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				status.Warn("No accounts to remove.")
				continue
			}
			acct, ok := pickAccount(accounts, provider)
			if !ok {
				continue
			}
			if err := a.Store.RemoveAccount(provider, acct.ID); err != nil {
				return err
			}
			status.Success("Removed account %s.", acct.Nickname)
		case 4:
			return nil
		}
	}
}

func (a *App) addAccount(provider store.Provider) error {
	id := uuid.NewString()
	status.Success(" => Generated ID: %s", id)

	acct := store.Account{
		ID:       id,
		Nickname: status.Question(" => Enter a nickname for this account: "),
		Niche:    status.Question(" => Enter the account niche: "),
		Language: status.Question(" => Enter the account language: "),
	}
	if err := a.Store.AddAccount(provider, acct); err != nil {
		return err
	}
	status.Success("Account %s added.", acct.Nickname)
	return nil
}

// pickAccount shows the account table and resolves a numeric selection.
func pickAccount(accounts []store.Account, provider store.Provider) (store.Account, bool) {
	printAccountsTable(accounts)
	input := status.Question("Select an account to start (%s): ", provider)
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(accounts) {
		status.Error("Invalid account selected. Please try again.")
		return store.Account{}, false
	}
	return accounts[n-1], true
}

func (a *App) menuAffiliateMarketing() error {
	options := []string{"Show products", "Add product", "Back"}
	for {
		choice := selectOption("AFFILIATE MARKETING", options)
		switch choice {
		case 1:
			products, err := a.Store.Products()
			if err != nil {
				return err
			}
			if len(products) == 0 {
				status.Warn("No products cached yet.")
				continue
			}
			printProductsTable(products)
		case 2:
			p := store.Product{
				ID:            uuid.NewString(),
				Name:          status.Question(" => Product name: "),
				URL:           status.Question(" => Product URL: "),
				AffiliateLink: status.Question(" => Affiliate link: "),
			}
			if err := a.Store.AddProduct(p); err != nil {
				return err
			}
			status.Success("Product %s cached.", p.Name)
		case 3:
			return nil
		}
	}
}

func (a *App) menuOutreach() error {
	creds, ok, err := a.Cfg.Email()
	if err != nil {
		return err
	}
	if !ok {
		status.Warn("No email credentials configured; set the \"email\" key in config.json.")
		return nil
	}

	leadsPath := filepath.Join(a.Store.Dir(), "scraper_results.csv")
	leads, err := outreach.ReadLeads(leadsPath)
	if err != nil {
		return err
	}
	status.Info("Loaded %d lead(s) from %s.", len(leads), leadsPath)

	sender, err := outreach.NewSender(creds, a.Cfg.OutreachSubject(), a.Cfg.OutreachBodyFile())
	if err != nil {
		return err
	}

	if !strings.EqualFold(status.Question("Send outreach emails to all leads? (Yes/No): "), "yes") {
		return nil
	}
	sent, failed := sender.Send(leads)
	status.Success("Sent %d email(s).", sent)
	if len(failed) > 0 {
		status.Warn("%d email(s) failed to send.", len(failed))
	}
	return nil
}

func confirm() bool {
	answer := status.Question("Yes/No: ")
	return strings.EqualFold(answer, "yes") || strings.EqualFold(answer, "y")
}
