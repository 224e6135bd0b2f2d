package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazibrq/PieStack/journal"
	"github.com/jazibrq/PieStack/ledger"
	"github.com/jazibrq/PieStack/match"
)

type fixture struct {
	book  *ledger.Book
	reg   *Registry
	owner ledger.Address
	rec   *journal.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	book := ledger.NewBook()
	owner := ledger.NewAddress()
	rec := journal.NewMemory()
	return &fixture{book: book, reg: New(book, owner, rec), owner: owner, rec: rec}
}

func (f *fixture) player(t *testing.T, funds ledger.Amount) ledger.Address {
	t.Helper()
	p := ledger.NewAddress()
	require.NoError(t, f.book.Issue(p, funds))
	return p
}

func TestCreateMatch_DeploysAndEnrollsCreator(t *testing.T) {
	f := newFixture(t)
	creator := f.player(t, 1000)

	addr, err := f.reg.CreateMatch(creator, 4, 100, 100)
	require.NoError(t, err)

	info, err := f.reg.MatchInfo(addr)
	require.NoError(t, err)
	assert.Equal(t, creator, info.Creator)
	assert.Equal(t, 1, info.PlayerCount, "creator is enrolled in the deploying operation")
	assert.Equal(t, ledger.Amount(100), info.PrizePool, "entry fee is forwarded into escrow")
	assert.Equal(t, match.StatusOpen, info.Status)
	assert.Equal(t, ledger.Amount(900), f.book.Balance(creator))

	assert.Len(t, f.rec.OfKind("registry.deployed"), 1)
}

func TestCreateMatch_RejectsWithoutRegistering(t *testing.T) {
	f := newFixture(t)
	creator := f.player(t, 1000)

	_, err := f.reg.CreateMatch(creator, 3, 100, 100)
	assert.ErrorIs(t, err, match.ErrInvalidConfig)

	_, err = f.reg.CreateMatch(creator, 4, 100, 99)
	assert.ErrorIs(t, err, match.ErrEntryFeeMismatch)

	poor := f.player(t, 50)
	_, err = f.reg.CreateMatch(poor, 4, 100, 100)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	assert.Equal(t, 0, f.reg.MatchCount(), "failed deployments leave no handle behind")
	assert.Equal(t, ledger.Amount(1000), f.book.Balance(creator))
}

func TestRegistry_FullLifecycleThroughGateway(t *testing.T) {
	f := newFixture(t)
	creator := f.player(t, 100)
	challenger := f.player(t, 100)

	addr, err := f.reg.CreateMatch(creator, 2, 100, 100)
	require.NoError(t, err)

	m, err := f.reg.Match(addr)
	require.NoError(t, err)
	require.NoError(t, m.Join(challenger, 100))

	players := []ledger.Address{creator, challenger}
	require.NoError(t, f.reg.SubmitResults(f.owner, addr, players, []int64{300, 500}))

	info, err := f.reg.MatchInfo(addr)
	require.NoError(t, err)
	assert.Equal(t, match.StatusCompleted, info.Status)
	assert.Equal(t, ledger.Amount(200), f.book.Balance(challenger))
	assert.Equal(t, ledger.Amount(0), f.book.Balance(creator))
}

func TestRegistry_PrivilegedRelaysKeepAuthorization(t *testing.T) {
	f := newFixture(t)
	creator := f.player(t, 100)
	stranger := f.player(t, 100)

	addr, err := f.reg.CreateMatch(creator, 2, 100, 100)
	require.NoError(t, err)

	err = f.reg.SubmitResults(stranger, addr, []ledger.Address{creator}, []int64{1})
	assert.ErrorIs(t, err, match.ErrNotAuthorized)

	err = f.reg.CancelMatch(stranger, addr)
	assert.ErrorIs(t, err, match.ErrNotAuthorized)

	// JoinFor drawn from the player's balance, relayed by the owner.
	require.NoError(t, f.reg.JoinFor(f.owner, addr, stranger, 100))
	info, err := f.reg.MatchInfo(addr)
	require.NoError(t, err)
	assert.Equal(t, 2, info.PlayerCount)
}

func TestRegistry_UnknownHandle(t *testing.T) {
	f := newFixture(t)

	_, err := f.reg.MatchInfo(ledger.NewAddress())
	assert.ErrorIs(t, err, ErrUnknownMatch)

	err = f.reg.CancelMatch(f.owner, ledger.NewAddress())
	assert.ErrorIs(t, err, ErrUnknownMatch)
}

func TestOpenMatches_FiltersByStatus(t *testing.T) {
	f := newFixture(t)

	var addrs []ledger.Address
	for i := 0; i < 3; i++ {
		creator := f.player(t, 100)
		addr, err := f.reg.CreateMatch(creator, 2, 100, 100)
		require.NoError(t, err)
		addrs = append(addrs, addr)
	}
	require.NoError(t, f.reg.CancelMatch(f.owner, addrs[1]))

	open := f.reg.OpenMatches()
	assert.Equal(t, []ledger.Address{addrs[0], addrs[2]}, open)
}

func TestMatches_Pagination(t *testing.T) {
	f := newFixture(t)

	var addrs []ledger.Address
	for i := 0; i < 5; i++ {
		creator := f.player(t, 100)
		addr, err := f.reg.CreateMatch(creator, 2, 100, 100)
		require.NoError(t, err)
		addrs = append(addrs, addr)
	}

	page, err := f.reg.Matches(0, 2)
	require.NoError(t, err)
	assert.Equal(t, addrs[:2], page)

	page, err = f.reg.Matches(3, 10)
	require.NoError(t, err)
	assert.Equal(t, addrs[3:], page)

	page, err = f.reg.Matches(5, 2)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = f.reg.Matches(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidPage)
}
