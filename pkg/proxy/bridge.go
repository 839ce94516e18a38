package proxy

// BridgeScript runs inside the proxied page. It exposes
// window.__findTextPosition(text), answers {type:'find-text', text, id}
// messages with {type:'text-position', id, position}, and announces itself
// to the parent with {type:'proxy-ready'}.
//
// Positions use the vertical mapping: x is fixed at 50, y is a percentage of
// the scroll height clamped to [5,95].
const BridgeScript = `(function () {
  function findTextPosition(text) {
    if (!text || !document.body) return null;
    var needle = String(text).toLowerCase();
    var walker = document.createTreeWalker(document.body, NodeFilter.SHOW_TEXT, null);
    var node;
    while ((node = walker.nextNode())) {
      if (node.textContent.toLowerCase().indexOf(needle) === -1) continue;
      var el = node.parentElement;
      if (!el) continue;
      var rect = el.getBoundingClientRect();
      var height = document.documentElement.scrollHeight || 1;
      var y = ((rect.top + window.scrollY) / height) * 100;
      return { x: 50, y: Math.min(95, Math.max(5, y)) };
    }
    return null;
  }

  window.__findTextPosition = findTextPosition;

  window.addEventListener('message', function (event) {
    var data = event.data;
    if (!data || data.type !== 'find-text') return;
    var reply = { type: 'text-position', id: data.id, position: findTextPosition(data.text) };
    if (event.source) {
      event.source.postMessage(reply, '*');
    } else if (window.parent) {
      window.parent.postMessage(reply, '*');
    }
  });

  if (window.parent && window.parent !== window) {
    window.parent.postMessage({ type: 'proxy-ready' }, '*');
  }
})();`
