package stream

// viewerHTML is the embedded spectator page: a canvas fed by the websocket
// stream, falling back to polling /api/state when websockets fail.
const viewerHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Lucky Snake spectator</title>
<style>
  body { background: #0e1016; color: #ebeef5; font-family: monospace;
         display: flex; flex-direction: column; align-items: center; }
  canvas { image-rendering: pixelated; margin-top: 1em;
           border: 2px solid #3a4050; }
  #status { color: #8c94a5; margin-top: 0.5em; }
</style>
</head>
<body>
<h2>LUCKY SNAKE</h2>
<canvas id="board" width="640" height="640"></canvas>
<div id="status">connecting…</div>
<script>
const canvas = document.getElementById('board');
const ctx = canvas.getContext('2d');
const status = document.getElementById('status');

const foodColors = ['#e6484b', '#f0d95a', '#f09a3c', '#e66a9a', '#b43341'];
const phases = ['press enter to start', 'running', 'paused', '…', 'game over'];

function draw(s) {
  const n = s.tile_count, cell = canvas.width / n;
  for (let y = 0; y < n; y++)
    for (let x = 0; x < n; x++) {
      ctx.fillStyle = (x + y) % 2 ? '#1a1e28' : '#212635';
      ctx.fillRect(x * cell, y * cell, cell, cell);
    }
  for (const f of s.food) {
    ctx.fillStyle = foodColors[f.Kind % foodColors.length];
    ctx.beginPath();
    ctx.arc((f.Pos.X + 0.5) * cell, (f.Pos.Y + 0.5) * cell, cell * 0.4, 0, 7);
    ctx.fill();
  }
  s.segments.forEach((seg, i) => {
    ctx.fillStyle = i === 0 ? '#7ce878' : '#4dbf4a';
    ctx.fillRect(seg.X * cell + 1, seg.Y * cell + 1, cell - 2, cell - 2);
  });
  status.textContent = 'score ' + s.score + '  best ' + s.high_score +
    '  [' + (phases[s.phase] || '') + ']' + (s.luck_enabled ? '' : '  LUCK OFF');
}

function connect() {
  const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') +
    location.host + '/ws');
  ws.onmessage = ev => draw(JSON.parse(ev.data));
  ws.onclose = () => {
    status.textContent = 'disconnected, polling…';
    const poll = setInterval(async () => {
      try {
        const r = await fetch('/api/state');
        if (r.ok) draw(await r.json());
      } catch (e) { /* keep polling */ }
    }, 500);
    setTimeout(() => { clearInterval(poll); connect(); }, 5000);
  };
}
connect();
</script>
</body>
</html>
`
