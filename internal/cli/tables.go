package cli

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"autoshorts/internal/store"
)

func printAccountsTable(accounts []store.Account) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "UUID", "Nickname", "Niche/Topic", "Language", "Videos"})
	for i, acct := range accounts {
		table.Append([]string{
			strconv.Itoa(i + 1),
			acct.ID,
			acct.Nickname,
			acct.Niche,
			acct.Language,
			strconv.Itoa(len(acct.Videos)),
		})
	}
	table.Render()
}

func printVideosTable(videos []store.VideoRecord) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Date", "Title", "URL"})
	for i, v := range videos {
		table.Append([]string{
			strconv.Itoa(i + 1),
			v.PostedAt,
			truncate(v.Title, 60),
			v.URL,
		})
	}
	table.Render()
}

func printProductsTable(products []store.Product) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Name", "URL", "Affiliate Link"})
	for i, p := range products {
		table.Append([]string{
			strconv.Itoa(i + 1),
			p.Name,
			truncate(p.URL, 40),
			truncate(p.AffiliateLink, 40),
		})
	}
	table.Render()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
