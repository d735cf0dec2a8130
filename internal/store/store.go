// Package store persists account and product collections as JSON documents,
// one file per collection. Every read re-parses the file and every write
// rewrites it whole. There is no locking and no atomicity: a crash mid-write
// can corrupt a collection, and concurrent processes can lose updates. That
// is an accepted limitation for single-user CLI use.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// Provider identifies which platform an account collection belongs to.
type Provider string

const (
	ProviderYouTube Provider = "youtube"
	ProviderTwitter Provider = "twitter"
)

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	return p == ProviderYouTube || p == ProviderTwitter
}

// Account is a registered content-creator identity for one provider.
// For Twitter accounts Niche holds the posting topic.
type Account struct {
	ID       string        `json:"id"`
	Nickname string        `json:"nickname"`
	Niche    string        `json:"niche"`
	Language string        `json:"language"`
	Videos   []VideoRecord `json:"videos"`
}

// VideoRecord is one published video appended to an account over time.
type VideoRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	PostedAt string `json:"posted_at"`
}

// Product is a cached affiliate-marketing item.
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	URL           string `json:"url"`
	AffiliateLink string `json:"affiliate_link"`
}

type accountsDoc struct {
	Accounts []Account `json:"accounts"`
}

type productsDoc struct {
	Products []Product `json:"products"`
}

// Store owns the on-disk cache directory holding one JSON file per collection.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the cache directory path.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) accountsPath(provider Provider) string {
	return filepath.Join(s.dir, string(provider)+".json")
}

func (s *Store) productsPath() string {
	return filepath.Join(s.dir, "afm.json")
}

// Accounts returns all accounts for a provider. A missing backing file is
// initialized to an empty collection, never an error. A file that exists but
// holds malformed JSON is a propagated parse failure.
func (s *Store) Accounts(provider Provider) ([]Account, error) {
	if !provider.Valid() {
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
	path := s.accountsPath(provider)

	var doc accountsDoc
	if err := readOrInit(path, &doc, accountsDoc{Accounts: []Account{}}); err != nil {
		return nil, err
	}
	return doc.Accounts, nil
}

// AddAccount appends an account and rewrites the collection. Duplicate ids are
// the caller's responsibility.
func (s *Store) AddAccount(provider Provider, acct Account) error {
	accounts, err := s.Accounts(provider)
	if err != nil {
		return err
	}
	accounts = append(accounts, acct)
	return writeDoc(s.accountsPath(provider), accountsDoc{Accounts: accounts})
}

// RemoveAccount filters out the account with the given id and rewrites the
// collection. Removing an id that is not present succeeds silently.
func (s *Store) RemoveAccount(provider Provider, id string) error {
	accounts, err := s.Accounts(provider)
	if err != nil {
		return err
	}
	kept := accounts[:0]
	for _, a := range accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return writeDoc(s.accountsPath(provider), accountsDoc{Accounts: kept})
}

// FindAccount returns the account with the given id, or false if absent.
func (s *Store) FindAccount(provider Provider, id string) (Account, bool, error) {
	accounts, err := s.Accounts(provider)
	if err != nil {
		return Account{}, false, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, true, nil
		}
	}
	return Account{}, false, nil
}

// AppendVideo records a published video on one account and rewrites the
// collection. An unknown account id is an error.
func (s *Store) AppendVideo(provider Provider, accountID string, video VideoRecord) error {
	accounts, err := s.Accounts(provider)
	if err != nil {
		return err
	}
	found := false
	for i := range accounts {
		if accounts[i].ID == accountID {
			accounts[i].Videos = append(accounts[i].Videos, video)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no %s account with id %s", provider, accountID)
	}
	return writeDoc(s.accountsPath(provider), accountsDoc{Accounts: accounts})
}

// Products returns the global product collection, lazily initialized like
// account collections.
func (s *Store) Products() ([]Product, error) {
	var doc productsDoc
	if err := readOrInit(s.productsPath(), &doc, productsDoc{Products: []Product{}}); err != nil {
		return nil, err
	}
	return doc.Products, nil
}

// AddProduct appends a product and rewrites the collection.
func (s *Store) AddProduct(p Product) error {
	products, err := s.Products()
	if err != nil {
		return err
	}
	products = append(products, p)
	return writeDoc(s.productsPath(), productsDoc{Products: products})
}

// readOrInit loads path into v. If the file does not exist it is created
// holding empty and empty is returned in v.
func readOrInit(path string, v, empty interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := writeDoc(path, empty); err != nil {
			return err
		}
		data, err = json.Marshal(empty)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeDoc(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
