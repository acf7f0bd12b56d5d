package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// watchColumns is the projection scanned by scanWatch.
const watchColumns = `
	watch_id, user_id, origin, destination,
	to_char(departure_date, 'YYYY-MM-DD'), to_char(return_date, 'YYYY-MM-DD'),
	price_threshold, currency, is_active,
	last_price, last_checked_at, last_alert_sent,
	created_at, updated_at`

// Watch queries.
const (
	queryCreateWatch = `
		INSERT INTO watches (
			watch_id, user_id, origin, destination,
			departure_date, return_date,
			price_threshold, currency, is_active,
			created_at, updated_at
		) VALUES (
			@watch_id, @user_id, @origin, @destination,
			(@departure_date::text)::date, (@return_date::text)::date,
			@price_threshold, @currency, @is_active,
			@created_at, @updated_at
		)`

	queryGetWatch = `
		SELECT ` + watchColumns + `
		FROM watches
		WHERE user_id = $1 AND watch_id = $2`

	queryListWatchesByUser = `
		SELECT ` + watchColumns + `
		FROM watches
		WHERE user_id = $1
		ORDER BY updated_at DESC, watch_id`

	queryListActiveWatches = `
		SELECT ` + watchColumns + `
		FROM watches
		WHERE is_active AND departure_date >= ($1::text)::date
		ORDER BY departure_date, created_at`

	queryUpdateWatch = `
		UPDATE watches SET
			price_threshold = COALESCE(@price_threshold, price_threshold),
			departure_date  = COALESCE((@departure_date::text)::date, departure_date),
			return_date     = COALESCE((@return_date::text)::date, return_date),
			is_active       = COALESCE(@is_active, is_active),
			updated_at      = @updated_at
		WHERE user_id = @user_id AND watch_id = @watch_id
		RETURNING ` + watchColumns

	queryDeleteWatch = `
		DELETE FROM watches WHERE user_id = $1 AND watch_id = $2`

	queryApplyPollResult = `
		UPDATE watches SET
			last_price      = $3,
			last_checked_at = $4,
			updated_at      = $4
		WHERE user_id = $1 AND watch_id = $2`

	queryMarkAlertSent = `
		UPDATE watches SET last_alert_sent = $3
		WHERE user_id = $1 AND watch_id = $2`
)

// PriceSnapshot queries.
const (
	queryInsertSnapshot = `
		INSERT INTO price_snapshots (
			watch_id, captured_at, price, currency, source,
			airline, flight_number, duration, stops, expires_at
		) VALUES (
			@watch_id, @captured_at, @price, @currency, @source,
			@airline, @flight_number, @duration, @stops, @expires_at
		)
		ON CONFLICT (watch_id, captured_at) DO NOTHING`

	queryGetPriceHistory = `
		SELECT watch_id, captured_at, price, currency, source,
			airline, flight_number, duration, stops, expires_at
		FROM price_snapshots
		WHERE watch_id = $1 AND expires_at > now()
		ORDER BY captured_at DESC
		LIMIT $2`

	queryDeleteExpiredSnapshots = `
		DELETE FROM price_snapshots WHERE expires_at <= $1`
)

// SchedulerLock queries.
const (
	queryAcquireSchedulerLock = `
		INSERT INTO scheduler_locks (job_name, lock_holder, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_name) DO UPDATE
			SET locked_at   = now(),
				lock_holder = EXCLUDED.lock_holder,
				expires_at  = EXCLUDED.expires_at
			WHERE scheduler_locks.expires_at < now()
				OR scheduler_locks.lock_holder = EXCLUDED.lock_holder
		RETURNING job_name`

	queryReleaseSchedulerLock = `
		DELETE FROM scheduler_locks WHERE job_name = $1 AND lock_holder = $2`
)
