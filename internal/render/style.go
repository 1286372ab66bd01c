package render

const stylesheet = `
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0; background: #f5f5f5; color: #222; }
main { max-width: 1200px; margin: 0 auto; padding: 20px; }
a { color: #2563eb; }
.back-to-main-page { display: inline-block; margin-bottom: 1em; }
.cot-explanation { max-width: 60em; }
table { border-collapse: collapse; background: white; width: 100%; }
thead td { font-weight: 600; background: #2c3e50; color: white; overflow-wrap: anywhere; }
thead td a { color: white; }
td { padding: 6px 10px; border-bottom: 1px solid #eee; text-align: right; }
td:first-child { text-align: left; }
.cot__information { margin-bottom: 1.5em; }
.cot__information .text { margin: 0.2em 0; }
.samples { display: flex; flex-direction: column; gap: 1em; max-height: 80vh; overflow-y: auto; }
.sample { background: white; border-radius: 8px; padding: 1em; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.conversation-item { border-left: 3px solid #94a3b8; padding: 0.25em 0.75em; margin: 0.5em 0; white-space: normal; }
.conversation-item--user { border-color: #2563eb; }
.conversation-item--assistant { border-color: #10b981; }
.conversation-item__content--plain { white-space: pre-wrap; font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 0.9em; }
.conversation-item__role { font-size: 0.8em; text-transform: uppercase; color: #64748b; }
`
