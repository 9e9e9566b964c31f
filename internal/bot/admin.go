package bot

import "fmt"

func (b *Bot) sendAdminDashboard(chatID int64) {
	stats, err := b.store.Stats()
	if err != nil {
		b.logger.Error("load stats", "err", err)
		return
	}
	mem := b.governor.MemoryUsageBytes() / (1 << 20)
	text := fmt.Sprintf(
		"👑 *Admin Dashboard*\n\n"+
			"📊 Total Users: %d\n"+
			"💎 Premium Users: %d\n"+
			"📁 Processed: %d (%d ok, %d failed)\n"+
			"⏱ Avg Processing: %.1fs\n"+
			"🧠 Memory: %d MB\n",
		stats.TotalUsers, stats.PremiumUsers,
		stats.TotalProcessed, stats.Succeeded, stats.Failed,
		stats.AvgSeconds, mem)
	b.sendMarkdown(chatID, text)
}
