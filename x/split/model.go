package split

import (
	"encoding/binary"
	"encoding/json"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
)

// fullShare is the total percentage every configuration must declare.
const fullShare = 100

// Storage namespaces. All keys carry the splitter ID so that many
// instances can live in the same store.
const (
	plannerPrefix = "split:plan:"
	sharePrefix   = "split:share:"
	changePrefix  = "split:change:"
	owedPrefix    = "split:owed:"
	seqKey        = "_s.split:id"
)

// Recipient pairs an account address with its percentage share of every
// deposit.
type Recipient struct {
	Address paysplit.Address `json:"address"`
	Share   int32            `json:"share"`
}

// Splitter is the immutable configuration of one distribution instance.
type Splitter struct {
	// Recipients in declaration order. The order defines the processing
	// order of every all-recipient operation.
	Recipients []*Recipient `json:"recipients"`
}

var _ paysplit.Persistent = (*Splitter)(nil)

func (s *Splitter) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

func (s *Splitter) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, s)
}

func (s *Splitter) Validate() error {
	return ValidateRecipients(s.Recipients, errors.ErrModel)
}

// ValidateRecipients returns an error if the given recipient list is not a
// valid configuration. This functionality is used in many places (model,
// messages and genesis), having it abstracted saves repeating validation
// code. Model validation returns a different class of error than message
// validation, that is why the base error class must be given.
//
// A repeated address is NOT rejected. A duplicate increases the effective
// allocation of that address while the declared shares still sum to 100.
func ValidateRecipients(rs []*Recipient, baseErr *errors.Error) error {
	if len(rs) == 0 {
		return errors.Wrap(baseErr, "no recipients")
	}

	var sum int64
	for i, r := range rs {
		if r.Share <= 0 || r.Share > fullShare {
			return errors.Wrapf(ErrShareRange, "recipient %d share %d", i, r.Share)
		}
		if err := r.Address.Validate(); err != nil {
			return errors.Wrapf(err, "recipient %d address", i)
		}
		sum += int64(r.Share)
	}
	if sum != fullShare {
		return errors.Wrapf(ErrShareSum, "shares sum to %d", sum)
	}
	return nil
}

// NewRecipients builds a recipient list from the parallel address and
// share lists form used by genesis and command line configuration.
func NewRecipients(addrs []paysplit.Address, shares []int32) ([]*Recipient, error) {
	if len(addrs) != len(shares) {
		return nil, errors.Wrapf(ErrShareCount, "%d recipients, %d shares", len(addrs), len(shares))
	}
	rs := make([]*Recipient, len(addrs))
	for i := range addrs {
		rs[i] = &Recipient{Address: addrs[i], Share: shares[i]}
	}
	return rs, nil
}

// PoolAccount returns the address of the account holding the custody of
// all not yet paid out deposits of one splitter instance.
func PoolAccount(splitterID []byte) paysplit.Address {
	return paysplit.NewCondition("split", "pool", splitterID).Address()
}

// createSplitter validates and persists a new splitter instance under the
// next sequence ID. The stored configuration is immutable, there is no
// update path.
func createSplitter(db paysplit.KVStore, s *Splitter) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	id, err := nextSplitterID(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire ID")
	}
	raw, err := s.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize splitter")
	}
	if err := db.Set(splitterKey(id), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store splitter")
	}
	// Index the share per address for constant time lookup. With a
	// duplicated address only the first declaration is indexed.
	for _, r := range s.Recipients {
		key := shareKey(id, r.Address)
		has, err := db.Has(key)
		if err != nil {
			return nil, errors.Wrap(err, "cannot check share index")
		}
		if has {
			continue
		}
		if err := storeCounter(db, key, int64(r.Share)); err != nil {
			return nil, errors.Wrap(err, "cannot index share")
		}
	}
	return id, nil
}

// loadSplitter returns the configuration stored under the given ID.
func loadSplitter(db paysplit.ReadOnlyKVStore, splitterID []byte) (*Splitter, error) {
	raw, err := db.Get(splitterKey(splitterID))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load splitter")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "splitter %x", splitterID)
	}
	var s Splitter
	if err := s.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "cannot deserialize splitter")
	}
	return &s, nil
}

// RecipientsOf returns the recipient declaration of the instance, in
// declaration order.
func RecipientsOf(db paysplit.ReadOnlyKVStore, splitterID []byte) ([]*Recipient, error) {
	s, err := loadSplitter(db, splitterID)
	if err != nil {
		return nil, err
	}
	return s.Recipients, nil
}

// PercentageOf returns the share of the given recipient, zero if the
// address is not a recipient. With a duplicated address only the first
// declaration is reported.
func PercentageOf(db paysplit.ReadOnlyKVStore, splitterID []byte, addr paysplit.Address) (int32, error) {
	share, err := loadCounter(db, shareKey(splitterID, addr))
	return int32(share), err
}

// nextSplitterID increments the instance sequence and returns its state
// as 8 bytes.
func nextSplitterID(db paysplit.KVStore) ([]byte, error) {
	raw, err := db.Get([]byte(seqKey))
	if err != nil {
		return nil, err
	}
	var val uint64
	if raw != nil {
		val = binary.BigEndian.Uint64(raw)
	}
	val++
	raw = make([]byte, 8)
	binary.BigEndian.PutUint64(raw, val)
	if err := db.Set([]byte(seqKey), raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func splitterKey(splitterID []byte) []byte {
	return append([]byte(plannerPrefix), splitterID...)
}

func shareKey(splitterID []byte, addr paysplit.Address) []byte {
	key := append([]byte(sharePrefix), splitterID...)
	key = append(key, ':')
	return append(key, addr...)
}

func changeKey(splitterID []byte, addr paysplit.Address) []byte {
	key := append([]byte(changePrefix), splitterID...)
	key = append(key, ':')
	return append(key, addr...)
}

func owedKey(splitterID []byte, addr paysplit.Address) []byte {
	key := append([]byte(owedPrefix), splitterID...)
	key = append(key, ':')
	return append(key, addr...)
}
