package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ecowave/ecowave-hub/internal/model"
	"github.com/ecowave/ecowave-hub/internal/store"
)

// thumbnail_image carries the canonical image_url, stock_qty the canonical
// stock. is_active is never stored; it is recomputed from stock on read.
const rewardCols = `id, name, description, points_required, stock_qty, thumbnail_image, created_at`

func scanReward(row interface{ Scan(...any) error }) (model.Reward, error) {
	var r model.Reward
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.PointsRequired, &r.Stock, &r.ImageURL, &r.CreatedAt)
	if err != nil {
		return model.Reward{}, err
	}
	r.Derive()
	return r, nil
}

// ListRewards returns the full catalog, newest first.
func (s *Store) ListRewards(ctx context.Context) ([]model.Reward, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+rewardCols+` FROM rewards ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reward
	for rows.Next() {
		r, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetReward fetches a reward by id.
func (s *Store) GetReward(ctx context.Context, id int64) (model.Reward, error) {
	r, err := scanReward(s.db.QueryRowContext(ctx,
		`SELECT `+rewardCols+` FROM rewards WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reward{}, store.ErrNotFound
	}
	return r, err
}

// CreateReward inserts a reward and returns the stored row.
func (s *Store) CreateReward(ctx context.Context, nr model.NewReward) (r model.Reward, err error) {
	defer recoverTo(&err)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rewards (name, description, points_required, stock_qty, thumbnail_image)
		 VALUES (?,?,?,?,?)`,
		nr.Name, nr.Description, nr.PointsRequired, nr.Stock, nr.ImageURL)
	if err != nil {
		return model.Reward{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Reward{}, err
	}
	return s.GetReward(ctx, id)
}

func rewardSetClauses(upd model.RewardUpdate) (set []string, args []any) {
	if upd.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.PointsRequired != nil {
		set = append(set, "points_required = ?")
		args = append(args, *upd.PointsRequired)
	}
	if upd.Stock != nil {
		set = append(set, "stock_qty = ?")
		args = append(args, *upd.Stock)
	}
	if upd.ImageURL != nil {
		set = append(set, "thumbnail_image = ?")
		args = append(args, *upd.ImageURL)
	}
	return set, args
}

// UpdateReward applies a partial update and returns the stored row.
func (s *Store) UpdateReward(ctx context.Context, id int64, upd model.RewardUpdate) (r model.Reward, err error) {
	defer recoverTo(&err)
	set, args := rewardSetClauses(upd)
	if len(set) == 0 {
		return s.GetReward(ctx, id)
	}
	args = append(args, id)
	if _, err := s.db.ExecContext(ctx,
		`UPDATE rewards SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...); err != nil {
		return model.Reward{}, err
	}
	return s.GetReward(ctx, id)
}

// DeleteReward removes a reward. Redemption history rows keep their
// reward_id and survive the delete.
func (s *Store) DeleteReward(ctx context.Context, id int64) (err error) {
	defer recoverTo(&err)
	res, err := s.db.ExecContext(ctx, `DELETE FROM rewards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListRedemptions returns the append-only redemption log joined with user
// and reward names for display, optionally filtered by user or reward.
func (s *Store) ListRedemptions(ctx context.Context, f model.RedemptionFilter) ([]model.Redemption, error) {
	q := `SELECT rr.id, rr.user_id, rr.reward_id,
	             COALESCE(TRIM(CONCAT(u.first_name, ' ', u.last_name)), ''),
	             COALESCE(rw.name, ''),
	             rr.points_deducted, rr.status, rr.redeemed_at
	      FROM reward_redemptions rr
	      LEFT JOIN users u ON u.id = rr.user_id
	      LEFT JOIN rewards rw ON rw.id = rr.reward_id`
	var conds []string
	var args []any
	if f.UserID != 0 {
		conds = append(conds, "rr.user_id = ?")
		args = append(args, f.UserID)
	}
	if f.RewardID != 0 {
		conds = append(conds, "rr.reward_id = ?")
		args = append(args, f.RewardID)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY rr.redeemed_at DESC"
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Redemption
	for rows.Next() {
		var r model.Redemption
		if err := rows.Scan(&r.ID, &r.UserID, &r.RewardID, &r.UserName, &r.RewardName,
			&r.PointsDeducted, &r.Status, &r.RedeemedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RedeemReward atomically checks stock and balance, deducts both and
// appends the redemption row. Stock exhaustion and balance shortfall map
// to their sentinels so the handler can answer inline.
func (s *Store) RedeemReward(ctx context.Context, userID, rewardID int64) (red model.Redemption, err error) {
	defer recoverTo(&err)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Redemption{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var stock int
	var cost int64
	err = tx.QueryRowContext(ctx,
		`SELECT stock_qty, points_required FROM rewards WHERE id = ? FOR UPDATE`, rewardID).
		Scan(&stock, &cost)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Redemption{}, store.ErrNotFound
	}
	if err != nil {
		return model.Redemption{}, err
	}
	if stock <= 0 {
		return model.Redemption{}, store.ErrOutOfStock
	}

	var points int64
	err = tx.QueryRowContext(ctx,
		`SELECT redeemable_points FROM users WHERE id = ? FOR UPDATE`, userID).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Redemption{}, store.ErrNotFound
	}
	if err != nil {
		return model.Redemption{}, err
	}
	if points < cost {
		return model.Redemption{}, store.ErrInsufficientPoints
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rewards SET stock_qty = stock_qty - 1 WHERE id = ?`, rewardID); err != nil {
		return model.Redemption{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET redeemable_points = redeemable_points - ? WHERE id = ?`, cost, userID); err != nil {
		return model.Redemption{}, err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO reward_redemptions (user_id, reward_id, points_deducted, status) VALUES (?,?,?,'completed')`,
		userID, rewardID, cost)
	if err != nil {
		return model.Redemption{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Redemption{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Redemption{}, err
	}
	return s.getRedemption(ctx, id)
}

func (s *Store) getRedemption(ctx context.Context, id int64) (model.Redemption, error) {
	var r model.Redemption
	err := s.db.QueryRowContext(ctx,
		`SELECT rr.id, rr.user_id, rr.reward_id,
		        COALESCE(TRIM(CONCAT(u.first_name, ' ', u.last_name)), ''),
		        COALESCE(rw.name, ''),
		        rr.points_deducted, rr.status, rr.redeemed_at
		 FROM reward_redemptions rr
		 LEFT JOIN users u ON u.id = rr.user_id
		 LEFT JOIN rewards rw ON rw.id = rr.reward_id
		 WHERE rr.id = ? LIMIT 1`, id).
		Scan(&r.ID, &r.UserID, &r.RewardID, &r.UserName, &r.RewardName,
			&r.PointsDeducted, &r.Status, &r.RedeemedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Redemption{}, store.ErrNotFound
	}
	return r, err
}
