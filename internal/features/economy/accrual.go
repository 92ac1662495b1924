// Package economy — пассивное начисление монет активной колодой.
// accrual.go содержит чистую детерминированную математику начисления.
package economy

// TotalRate суммирует производительность карт.
func TotalRate(rates []int64) int64 {
	var total int64
	for _, r := range rates {
		total += r
	}
	return total
}

// PendingCoins возвращает монеты, накопленные с lastRewardAt к моменту now:
// целые прошедшие секунды, умноженные на суммарную производительность.
// При now <= lastRewardAt накоплений нет.
func PendingCoins(lastRewardAt, now int64, rates []int64) int64 {
	elapsed := now - lastRewardAt
	if elapsed <= 0 {
		return 0
	}
	return elapsed * TotalRate(rates)
}
