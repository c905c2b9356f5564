package styles

var (
	IconBell      = "🔔"
	IconUnread    = "●"
	IconRead      = "○"
	IconTransient = "⏱"
	IconShare     = "🔗"
	IconMuted     = "🔕"
)
