package fetch

import (
	"context"
	"fmt"
)

// /league/{league_id}
func (c *Client) League(ctx context.Context, leagueID string, force bool) ([]byte, error) {
	return c.FetchRaw(ctx,
		fmt.Sprintf("/league/%s", leagueID),
		fmt.Sprintf("league/%s/league.json", leagueID),
		force,
	)
}

// /league/{league_id}/users
func (c *Client) Users(ctx context.Context, leagueID string, force bool) ([]byte, error) {
	return c.FetchRaw(ctx,
		fmt.Sprintf("/league/%s/users", leagueID),
		fmt.Sprintf("league/%s/users.json", leagueID),
		force,
	)
}

// /league/{league_id}/rosters
func (c *Client) Rosters(ctx context.Context, leagueID string, force bool) ([]byte, error) {
	return c.FetchRaw(ctx,
		fmt.Sprintf("/league/%s/rosters", leagueID),
		fmt.Sprintf("league/%s/rosters.json", leagueID),
		force,
	)
}

// /league/{league_id}/matchups/{week}
func (c *Client) Matchups(ctx context.Context, leagueID string, week int, force bool) ([]byte, error) {
	return c.FetchRaw(ctx,
		fmt.Sprintf("/league/%s/matchups/%d", leagueID, week),
		fmt.Sprintf("league/%s/matchups/%d.json", leagueID, week),
		force,
	)
}

// /league/{league_id}/winners_bracket
func (c *Client) WinnersBracket(ctx context.Context, leagueID string, force bool) ([]byte, error) {
	return c.FetchRaw(ctx,
		fmt.Sprintf("/league/%s/winners_bracket", leagueID),
		fmt.Sprintf("league/%s/winners_bracket.json", leagueID),
		force,
	)
}
